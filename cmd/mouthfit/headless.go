package main

import (
	"fmt"

	"mouthfit/internal/scene"
	"mouthfit/internal/studio"
	"mouthfit/internal/utils"
)

type headlessOptions struct {
	shape   string
	pointer string
	dump    string

	// Nil sliders are left alone.
	posY, posX, size *float64
}

func runHeadless(s *studio.Studio, o headlessOptions) error {
	sc := studio.Scenario{Shape: o.shape, PosY: o.posY, PosX: o.posX, Size: o.size}
	if o.pointer != "" {
		p, err := scene.ParseVec2(o.pointer)
		if err != nil {
			return err
		}
		sc.Pointer = &p
	}

	res, pointerOK, err := s.Run(sc)
	if err != nil {
		return err
	}
	if !pointerOK {
		utils.Warn("Pointer %v is outside the container, ignored", *sc.Pointer)
	}
	utils.Info("Gap check: layer=%s gap=%dpx/%dpx severity=%s window=%v",
		res.Layer, res.Count, res.Area(), res.Severity, res.Window)
	fmt.Println(res.Feedback.RatioText)

	if o.dump != "" {
		if err := s.Detector().SavePreview(o.dump); err != nil {
			return err
		}
		utils.Info("Gap canvas written to %s", o.dump)
	}
	return nil
}
