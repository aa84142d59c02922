package model

import (
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Pose is a snapshot of joint and mesh-local transforms keyed by node name.
type Pose struct {
	Model  string               `yaml:"model,omitempty"`
	Joints map[string]Transform `yaml:"joints"`
	Meshes map[string]Transform `yaml:"meshes,omitempty"`
}

// CapturePose records every joint and mesh-local transform under root.
func CapturePose(model string, root *Node) Pose {
	p := Pose{
		Model:  model,
		Joints: make(map[string]Transform),
		Meshes: make(map[string]Transform),
	}
	root.Walk(func(n *Node, _ int) bool {
		p.Joints[n.name] = n.Joint
		if n.Mesh != nil {
			p.Meshes[n.name] = n.Mesh.Local
		}
		return true
	})
	return p
}

// Apply writes the pose into the tree under root. Nodes not named by the
// pose keep their transforms. Names missing from the tree are skipped and
// reported together in an ErrNodeNotFound error after the rest is applied.
func (p Pose) Apply(root *Node) error {
	missing := make(map[string]bool)

	for name, t := range p.Joints {
		n, ok := root.Find(name)
		if !ok {
			missing[name] = true
			continue
		}
		n.Joint = t
	}
	for name, t := range p.Meshes {
		n, ok := root.Find(name)
		if !ok {
			missing[name] = true
			continue
		}
		if n.Mesh != nil {
			n.Mesh.Local = t
		}
	}

	if len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for name := range missing {
			names = append(names, name)
		}
		sort.Strings(names)
		return errors.Wrapf(ErrNodeNotFound, "pose names %s", strings.Join(names, ", "))
	}
	return nil
}

// SavePose writes p to path as YAML.
func SavePose(path string, p Pose) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "marshal pose")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "write pose %s", path)
	}
	return nil
}

// LoadPose reads a YAML pose from path.
func LoadPose(path string) (Pose, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Pose{}, errors.Wrapf(err, "read pose %s", path)
	}
	var p Pose
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Pose{}, errors.Wrapf(err, "parse pose %s", path)
	}
	return p, nil
}
