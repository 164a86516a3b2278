package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"mouthfit/internal/convert"
	"mouthfit/internal/studio"
	"mouthfit/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// configName is looked up inside an unpacked package when -config is empty.
const configName = "mouthfit.json"

func main() {
	configPath := flag.String("config", "", "Path to the scene config (JSON). Empty uses the stock mouth set")
	pkgPath := flag.String("pkg", "", "Path to a .pkg asset bundle to unpack and use")
	unpackDir := flag.String("unpack-dir", "tmp", "Directory the .pkg is unpacked into")
	debugFlag := flag.Bool("debug", false, "Enable verbose debug logging")
	raylibInfo := flag.Bool("raylib-info", false, "Show raylib info logs")
	noColor := flag.Bool("no-color", false, "Disable coloured log output")
	globalPointer := flag.Bool("global-pointer", false, "Follow the desktop pointer through X11 even when unfocused")
	watch := flag.Bool("watch", true, "Reload when the config or an image changes")
	dumpConfig := flag.Bool("dump-config", false, "Print the effective config with defaults and exit")
	decodeTex := flag.String("decode", "", "Convert a single .tex file to PNG and exit")
	decodeOut := flag.String("out", "test_out", "Output directory for -decode")

	headless := flag.Bool("headless", false, "Run a single gap check without a window")
	shape := flag.String("shape", "", "Mouth shape to show (a, i, u, e, o or none)")
	posY := flag.Float64("pos-y", 0, "Vertical slider value")
	posX := flag.Float64("pos-x", 0, "Horizontal slider value")
	size := flag.Float64("size", 100, "Size slider value")
	pointer := flag.String("pointer", "", "Pointer position x,y inside the container")
	dumpGap := flag.String("dump-gap", "", "Write the annotated gap canvas to this PNG file")
	flag.Parse()

	level := utils.LevelInfo
	if *debugFlag {
		level = utils.LevelDebug
	}
	utils.InitLogger(os.Stderr, level, *noColor)
	utils.ShowRaylibInfo = *raylibInfo
	rl.SetTraceLogCallback(utils.RaylibLogCallback)

	if *decodeTex != "" {
		if err := runDecode(*decodeTex, *decodeOut); err != nil {
			utils.Error("Decode failed: %v", err)
			os.Exit(1)
		}
		return
	}

	var opts studio.Options
	if *pkgPath != "" {
		if err := preparePackage(*pkgPath, *unpackDir); err != nil {
			utils.Error("Failed to prepare package: %v", err)
			os.Exit(1)
		}
		opts.SearchDirs = []string{*unpackDir}
		if *configPath == "" {
			*configPath = findConfig(*unpackDir)
		}
	}

	s, err := studio.Load(*configPath, opts)
	if err != nil {
		utils.Error("Failed to load scene: %v", err)
		os.Exit(1)
	}

	if *dumpConfig {
		data, err := s.Config().Marshal()
		if err != nil {
			utils.Error("Failed to encode config: %v", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
		return
	}

	if *headless {
		set := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

		ho := headlessOptions{shape: *shape, pointer: *pointer, dump: *dumpGap}
		if set["pos-y"] {
			ho.posY = posY
		}
		if set["pos-x"] {
			ho.posX = posX
		}
		if set["size"] {
			ho.size = size
		}
		if err := runHeadless(s, ho); err != nil {
			utils.Error("Headless check failed: %v", err)
			os.Exit(1)
		}
		return
	}

	utils.Info("--- mouthfit ---")
	window := NewWindow(s, WindowOptions{
		ConfigPath:    *configPath,
		Studio:        opts,
		Watch:         *watch,
		GlobalPointer: *globalPointer,
		InitialShape:  *shape,
	})
	defer window.Close()
	window.Run()
}

// preparePackage unpacks the bundle unless outDir already exists, then
// converts its textures.
func preparePackage(pkgPath, outDir string) error {
	if _, err := os.Stat(outDir); errors.Is(err, fs.ErrNotExist) {
		utils.Info("Unpacking %s...", pkgPath)
		files, err := convert.ExtractPkg(pkgPath, outDir)
		if err != nil {
			return err
		}
		utils.Info("Unpacked %d files into %s", len(files), outDir)
	} else if err != nil {
		return err
	}

	if _, err := convert.BulkConvertTextures(outDir, ""); err != nil {
		return err
	}
	return nil
}

func findConfig(root string) string {
	var found string
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() && d.Name() == configName {
			utils.Debug("Found %s at: %s", configName, path)
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	return found
}

func runDecode(texPath, outDir string) error {
	utils.Info("Decoding: %s", texPath)
	img, err := convert.DecodeTexFile(texPath)
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(filepath.Base(texPath), filepath.Ext(texPath))
	outPath := filepath.Join(outDir, base+".png")
	if err := convert.SavePNG(outPath, img); err != nil {
		return err
	}
	utils.Info("Decode successful! Saved to: %s", outPath)
	return nil
}
