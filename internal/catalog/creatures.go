package catalog

var (
	skin    = [4]float32{0.96, 0.80, 0.69, 1}
	cloth   = [4]float32{0.25, 0.42, 0.75, 1}
	denim   = [4]float32{0.20, 0.25, 0.45, 1}
	leather = [4]float32{0.35, 0.22, 0.12, 1}
	feather = [4]float32{0.98, 0.97, 0.92, 1}
	crest   = [4]float32{0.85, 0.10, 0.10, 1}
	horn    = [4]float32{0.95, 0.70, 0.15, 1}
	fur     = [4]float32{0.55, 0.55, 0.58, 1}
	darkFur = [4]float32{0.30, 0.30, 0.33, 1}
	coat    = [4]float32{0.55, 0.33, 0.16, 1}
	mane    = [4]float32{0.15, 0.10, 0.07, 1}
)

// personBlueprint is a humanoid about 1.2 units tall, facing +Z.
func personBlueprint() part {
	return block("body", 0.30, 0.50, 0.16, 0, 0, 0, v(0, 0, 0), cloth,
		block("head", 0.20, 0.20, 0.20, 0, -1, 0, v(0, 25, 0), skin,
			block("nose", 0.04, 0.04, 0.05, 0, 0, -1, v(0, 35, 10), skin),
		),
		limb("leftUpperArm", 0.08, 0.22, 0.08, v(-19, 23, 0), cloth,
			limb("leftForearm", 0.07, 0.20, 0.07, v(-19, 1, 0), skin),
		),
		limb("rightUpperArm", 0.08, 0.22, 0.08, v(19, 23, 0), cloth,
			limb("rightForearm", 0.07, 0.20, 0.07, v(19, 1, 0), skin),
		),
		limb("leftLeg", 0.10, 0.30, 0.10, v(-8, -25, 0), denim,
			block("leftFoot", 0.10, 0.04, 0.16, 0, 1, 0, v(-8, -55, 3), leather),
		),
		limb("rightLeg", 0.10, 0.30, 0.10, v(8, -25, 0), denim,
			block("rightFoot", 0.10, 0.04, 0.16, 0, 1, 0, v(8, -55, 3), leather),
		),
	)
}

// chickenBlueprint is a small biped facing +Z.
func chickenBlueprint() part {
	return block("body", 0.30, 0.24, 0.40, 0, 0, 0, v(0, 0, 0), feather,
		block("head", 0.14, 0.16, 0.14, 0, -1, 0, v(0, 10, 22), feather,
			block("beak", 0.06, 0.04, 0.07, 0, 0, -1, v(0, 20, 29), horn),
			block("comb", 0.03, 0.06, 0.08, 0, -1, 0, v(0, 26, 22), crest),
			block("wattle", 0.04, 0.06, 0.03, 0, 1, 0, v(0, 17, 29), crest),
		),
		block("leftWing", 0.03, 0.18, 0.28, 1, 1, 0, v(-15, 8, 0), feather),
		block("rightWing", 0.03, 0.18, 0.28, -1, 1, 0, v(15, 8, 0), feather),
		block("tail", 0.16, 0.16, 0.08, 0, -1, 1, v(0, 4, -20), feather),
		limb("leftLeg", 0.03, 0.20, 0.03, v(-6, -12, 0), horn,
			block("leftFoot", 0.08, 0.02, 0.10, 0, 1, 0, v(-6, -32, 2), horn),
		),
		limb("rightLeg", 0.03, 0.20, 0.03, v(6, -12, 0), horn,
			block("rightFoot", 0.08, 0.02, 0.10, 0, 1, 0, v(6, -32, 2), horn),
		),
	)
}

// wolfBlueprint is a quadruped facing +Z.
func wolfBlueprint() part {
	return block("body", 0.24, 0.20, 0.70, 0, 0, 0, v(0, 0, 0), fur,
		block("head", 0.20, 0.18, 0.18, 0, 0, -1, v(0, 10, 35), fur,
			block("snout", 0.10, 0.08, 0.12, 0, 0, -1, v(0, 6, 53), darkFur),
			block("leftEar", 0.05, 0.08, 0.03, 0, -1, 0, v(-6, 19, 42), darkFur),
			block("rightEar", 0.05, 0.08, 0.03, 0, -1, 0, v(6, 19, 42), darkFur),
		),
		limb("frontLeftLeg", 0.08, 0.30, 0.08, v(-8, -10, 28), fur),
		limb("frontRightLeg", 0.08, 0.30, 0.08, v(8, -10, 28), fur),
		limb("backLeftLeg", 0.08, 0.30, 0.08, v(-8, -10, -28), fur),
		limb("backRightLeg", 0.08, 0.30, 0.08, v(8, -10, -28), fur),
		block("tail", 0.06, 0.06, 0.30, 0, 0, 1, v(0, 5, -35), darkFur),
	)
}

// horseBlueprint is a tall quadruped with jointed legs, facing +Z.
func horseBlueprint() part {
	return block("body", 0.28, 0.28, 0.80, 0, 0, 0, v(0, 0, 0), coat,
		block("neck", 0.14, 0.30, 0.17, 0, -1, 0, v(0, 8, 34), coat,
			block("head", 0.12, 0.13, 0.25, 0, 0, -1, v(0, 38, 38), coat),
			block("mane", 0.04, 0.30, 0.04, 0, -1, 1, v(0, 10, 26), mane),
		),
		limb("frontLeftUpperLeg", 0.09, 0.22, 0.09, v(-9, -12, 32), coat,
			limb("frontLeftLowerLeg", 0.07, 0.25, 0.07, v(-9, -34, 32), mane),
		),
		limb("frontRightUpperLeg", 0.09, 0.22, 0.09, v(9, -12, 32), coat,
			limb("frontRightLowerLeg", 0.07, 0.25, 0.07, v(9, -34, 32), mane),
		),
		limb("backLeftUpperLeg", 0.09, 0.22, 0.09, v(-9, -12, -32), coat,
			limb("backLeftLowerLeg", 0.07, 0.25, 0.07, v(-9, -34, -32), mane),
		),
		limb("backRightUpperLeg", 0.09, 0.22, 0.09, v(9, -12, -32), coat,
			limb("backRightLowerLeg", 0.07, 0.25, 0.07, v(9, -34, -32), mane),
		),
		block("tail", 0.05, 0.35, 0.05, 0, 1, 1, v(0, 10, -40), mane),
	)
}
