package main

import (
	"hash/fnv"
	"image"

	"mouthfit/internal/scene"
	"mouthfit/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func textureFromImage(img image.Image) rl.Texture2D {
	rlImg := rl.NewImageFromImage(img)
	tex := rl.LoadTextureFromImage(rlImg)
	rl.UnloadImage(rlImg)
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	return tex
}

// loadTextures uploads every layer image. Layers without an image get no
// entry and are drawn as placeholders.
func loadTextures(layers []*scene.Layer) map[string]rl.Texture2D {
	textures := make(map[string]rl.Texture2D, len(layers))
	for _, layer := range layers {
		if layer.Image == nil {
			continue
		}
		tex := textureFromImage(layer.Image)
		if tex.ID == 0 {
			utils.Error("Failed to upload texture for layer %s", layer.ID)
			continue
		}
		textures[layer.ID] = tex
	}
	return textures
}

func unloadTextures(textures map[string]rl.Texture2D) {
	for id, tex := range textures {
		rl.UnloadTexture(tex)
		delete(textures, id)
	}
}

// placeholderColor gives each layer a stable colour derived from its id.
func placeholderColor(layer *scene.Layer) rl.Color {
	if layer.IsBackground() {
		return rl.NewColor(150, 40, 50, 255)
	}
	h := fnv.New32a()
	h.Write([]byte(layer.ID))
	v := h.Sum32()
	return rl.NewColor(80+uint8(v%150), 80+uint8(v>>8%150), 80+uint8(v>>16%150), 160)
}
