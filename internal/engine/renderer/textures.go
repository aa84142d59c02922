package renderer

import (
	"context"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/articula/internal/engine/model"
	"github.com/Faultbox/articula/internal/engine/shader"
	"github.com/Faultbox/articula/internal/engine/texture"
	"github.com/Faultbox/articula/internal/logger"
)

// ErrUnknownTexture is returned when binding a texture mode that has no texture.
var ErrUnknownTexture = errors.New("unknown texture mode")

// Textures owns the GL textures behind the bump, image and reflective
// modes. Each starts as a 1×1 placeholder and is replaced as decoded images
// arrive through Poll. Cube faces not yet loaded stay placeholders at the
// size of the loaded ones.
type Textures struct {
	flat2D map[model.TextureMode]uint32
	cube   uint32
	faces  *cubeFaces

	cache   *texture.Cache
	pending <-chan texture.Result
	cancel  context.CancelFunc
	log     *zap.Logger
}

// NewTextures creates placeholder textures. Requires a current GL context.
func NewTextures() *Textures {
	t := &Textures{
		flat2D: make(map[model.TextureMode]uint32),
		faces:  newCubeFaces(),
		cache:  texture.NewCache(),
		log:    logger.Named("textures"),
	}

	placeholder := texture.Placeholder()
	for _, mode := range []model.TextureMode{model.TextureBump, model.TextureImage} {
		var id uint32
		gl.GenTextures(1, &id)
		upload2D(id, placeholder)
		t.flat2D[mode] = id
	}

	gl.GenTextures(1, &t.cube)
	for face, img := range t.faces.faces {
		uploadCubeFace(t.cube, face, img)
	}
	return t
}

// Load starts decoding src in the background. Images are uploaded by later
// Poll calls. A previous load still in flight is cancelled.
func (t *Textures) Load(ctx context.Context, src texture.Sources) {
	if t.cancel != nil {
		t.cancel()
	}
	ctx, t.cancel = context.WithCancel(ctx)
	t.pending = texture.LoadAsync(ctx, t.cache, src)
}

// Poll uploads every decoded image that is ready without blocking and
// returns how many were uploaded.
func (t *Textures) Poll() int {
	uploaded := 0
	for t.pending != nil {
		select {
		case r, ok := <-t.pending:
			if !ok {
				t.pending = nil
				return uploaded
			}
			if r.Err != nil {
				continue
			}
			t.apply(r)
			uploaded++
		default:
			return uploaded
		}
	}
	return uploaded
}

func (t *Textures) apply(r texture.Result) {
	switch r.Mode {
	case model.TextureReflective:
		for _, face := range t.faces.set(r.Face, r.Image) {
			uploadCubeFace(t.cube, face, t.faces.faces[face])
		}
	default:
		id, ok := t.flat2D[r.Mode]
		if !ok {
			return
		}
		upload2D(id, r.Image)
	}
	t.log.Debug("texture uploaded",
		zap.Stringer("mode", r.Mode),
		zap.String("path", r.Path),
	)
}

// BindTexture binds the texture sampled in mode to its unit. Flat needs none.
func (t *Textures) BindTexture(mode model.TextureMode) error {
	switch mode {
	case model.TextureFlat:
		return nil
	case model.TextureReflective:
		gl.ActiveTexture(gl.TEXTURE0 + shader.UnitCube)
		gl.BindTexture(gl.TEXTURE_CUBE_MAP, t.cube)
		return nil
	}

	id, ok := t.flat2D[mode]
	if !ok {
		return errors.Wrapf(ErrUnknownTexture, "mode %d", int(mode))
	}
	gl.ActiveTexture(gl.TEXTURE0 + shader.UnitImage)
	gl.BindTexture(gl.TEXTURE_2D, id)
	return nil
}

// Close cancels pending loads and deletes every texture.
func (t *Textures) Close() {
	if t.cancel != nil {
		t.cancel()
	}
	for mode, id := range t.flat2D {
		gl.DeleteTextures(1, &id)
		delete(t.flat2D, mode)
	}
	if t.cube != 0 {
		gl.DeleteTextures(1, &t.cube)
		t.cube = 0
	}
}

// sampling is the filter policy for one image: power-of-two images get a
// mipmap chain, others are clamped and sampled linearly.
type sampling struct {
	mipmap    bool
	minFilter int32
	wrap      int32
}

func samplingFor(width, height int) sampling {
	if texture.IsPowerOfTwo(width, height) {
		return sampling{mipmap: true, minFilter: gl.LINEAR_MIPMAP_LINEAR, wrap: gl.REPEAT}
	}
	return sampling{minFilter: gl.LINEAR, wrap: gl.CLAMP_TO_EDGE}
}

func upload2D(id uint32, img *image.NRGBA) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	s := samplingFor(w, h)

	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, s.wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, s.wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, s.minFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	if s.mipmap {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func uploadCubeFace(id uint32, face int, img *image.NRGBA) {
	w, h := img.Rect.Dx(), img.Rect.Dy()

	gl.BindTexture(gl.TEXTURE_CUBE_MAP, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(face), 0, gl.RGBA, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))

	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
}
