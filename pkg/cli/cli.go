package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Elwqnn/wfc/pkg/wfc"
)

func usage() {
	fmt.Println("Commands available:")
	fmt.Println("  /  - edit a config option")
	fmt.Println("  l  - load a sample image from disk")
	fmt.Println("  b  - use the built-in pipe sample")
	fmt.Println("  r  - build the solver from the current sample/config and run it to completion")
	fmt.Println("  n  - perform a single observe/collapse/propagate step")
	fmt.Println("  t  - reset the solver to its post-construction state")
	fmt.Println("  retry - reset and run repeatedly until Done or a retry budget is exhausted")
	fmt.Println("  p  - preview the current render in the terminal")
	fmt.Println("  s  - save the current render to a file")
	fmt.Println("  u  - check for updates")
	fmt.Println("  h  - show this help message")
	fmt.Println("  q  - quit")
}

// RunCLI drives the interactive REPL: load or pick a sample, tune the
// Config, build a Solver, and step or run it to completion, previewing and
// saving renders along the way.
func RunCLI() {
	var inputPath string
	if len(os.Args) >= 2 {
		inputPath = os.Args[1]
	}

	InitLogLevel()

	cfg := wfc.DefaultConfig()
	var sample *wfc.Sample
	var solver *wfc.Solver
	var currentSeed int64

	if inputPath != "" {
		s, err := LoadSample(inputPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read sample %s: %v\n", inputPath, err)
			os.Exit(1)
		}
		sample = s
		fmt.Println(DescribeSample(sample))
	} else {
		sample = wfc.DefaultSample()
		fmt.Println("no sample given, using the built-in pipe sample")
	}

	fmt.Println("Wave Function Collapse")
	usage()

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Fprintf(os.Stderr, "read input error: %v\n", err)
			continue
		}
		cmd := strings.TrimSpace(line)

		if cmd == "retry" {
			runRetry(sample, cfg, &solver, &currentSeed)
			continue
		}
		if len(cmd) != 1 {
			continue
		}
		r := rune(cmd[0])

		switch r {
		case '/':
			name, err := SelectConfigOptionWithFzf(ConfigOptions)
			if err != nil || name == "" {
				fmt.Println("Config options (fallback):")
				for i, o := range ConfigOptions {
					fmt.Printf("  %d) %s - %s\n", i+1, o.Name, o.Description)
				}
				selection, _ := PromptLine("Enter number or option name (leave empty to cancel): ")
				if selection == "" {
					fmt.Println("selection cancelled")
					continue
				}
				if idx, perr := strconv.Atoi(selection); perr == nil {
					if idx < 1 || idx > len(ConfigOptions) {
						fmt.Println("invalid selection")
						continue
					}
					name = ConfigOptions[idx-1].Name
				} else {
					name = strings.ToLower(strings.TrimSpace(selection))
				}
			}

			opt, ok := FindConfigOption(name)
			if !ok {
				fmt.Printf("unknown option: %s\n", name)
				continue
			}
			fmt.Printf("\n%s (current: %s)\n", GenerateTooltip(opt), opt.Get(cfg))
			raw, _ := PromptLine(fmt.Sprintf("%s = ", opt.Name))
			if raw == "" {
				fmt.Println("unchanged")
				continue
			}
			if err := NormalizeConfigValue(opt, raw); err != nil {
				fmt.Fprintf(os.Stderr, "invalid value: %v\n", err)
				continue
			}
			if err := opt.Set(&cfg, raw); err != nil {
				fmt.Fprintf(os.Stderr, "invalid value: %v\n", err)
				continue
			}
			fmt.Printf("%s = %s\n", opt.Name, opt.Get(cfg))

		case 'l':
			selected, selErr := SelectFileWithFzf(".")
			var path string
			if selErr != nil || selected == "" {
				path, _ = PromptLine("Enter path to sample image (leave empty to cancel): ")
				if path == "" {
					fmt.Println("load cancelled")
					continue
				}
			} else {
				path = selected
			}
			s, err := LoadSample(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed to read sample %s: %v\n", path, err)
				continue
			}
			sample = s
			solver = nil
			fmt.Println(DescribeSample(sample))

		case 'b':
			sample = wfc.DefaultSample()
			solver = nil
			fmt.Println("using the built-in pipe sample")

		case 'r':
			currentSeed = seedFromEnvOrTime()
			s, err := wfc.New(sample, cfg, currentSeed)
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed to build solver: %v\n", err)
				continue
			}
			solver = s
			Log().Infof("starting run, seed=%d remaining=%d", currentSeed, solver.Remaining())
			for solver.Step() {
				if c := solver.LastCollapsed; c != nil {
					Log().Infof("observed cell (%d,%d), %d cells remaining", c.X, c.Y, solver.Remaining())
				}
			}
			fmt.Printf("solver %s after run\n", solver.State())

		case 'n':
			if solver == nil {
				currentSeed = seedFromEnvOrTime()
				s, err := wfc.New(sample, cfg, currentSeed)
				if err != nil {
					fmt.Fprintf(os.Stderr, "failed to build solver: %v\n", err)
					continue
				}
				solver = s
			}
			if !solver.Step() {
				fmt.Printf("solver %s\n", solver.State())
				continue
			}
			if solver.LastCollapsed != nil {
				c := solver.LastCollapsed
				Log().Infof("observed cell (%d,%d), %d cells remaining", c.X, c.Y, solver.Remaining())
				fmt.Printf("collapsed (%d, %d)\n", c.X, c.Y)
			}

		case 't':
			if solver == nil {
				fmt.Println("no solver to reset")
				continue
			}
			solver.Reset()
			fmt.Println("solver reset")

		case 'p':
			if solver == nil {
				fmt.Println("no solver yet; press 'r' or 'n' first")
				continue
			}
			img := RenderToImage(solver.Render(), cfg.OutputWidth, cfg.OutputHeight)
			if err := PreviewImage(img, "png"); err != nil {
				fmt.Fprintf(os.Stderr, "preview failed: %v\n", err)
			}

		case 's':
			if solver == nil {
				fmt.Println("no solver yet; press 'r' or 'n' first")
				continue
			}
			out, _ := PromptLineOrFzf("Enter output filename (or / to browse): ")
			if out == "" {
				fmt.Println("no filename provided")
				continue
			}
			if err := SaveRender(out, solver.Render(), cfg.OutputWidth, cfg.OutputHeight, currentSeed, cfg); err != nil {
				fmt.Fprintf(os.Stderr, "failed to write render: %v\n", err)
				continue
			}
			fmt.Printf("Saved to %s\n", out)

		case 'u':
			if err := CheckForUpdates(); err != nil {
				fmt.Fprintf(os.Stderr, "update check error: %v\n", err)
			}

		case 'h':
			usage()

		case 'q':
			fmt.Println("Exiting...")
			return

		default:
			// ignore other keys
		}
	}
}

// maxRetryAttempts bounds the retry command so a pathological config
// (one whose patterns can't tile without contradiction) can't spin forever.
const maxRetryAttempts = 20

// runRetry builds one solver against sample/cfg, seeded once, then repeatedly
// Resets and re-runs it — the same solver instance, so each attempt draws
// fresh randomness from where the last one left off — until it reaches Done
// or the attempt budget is exhausted. It reports a Done/Contradicted tally
// and leaves *solverPtr pointing at the final attempt so 'p'/'s' can inspect
// it afterward; the engine itself never retries on its own.
func runRetry(sample *wfc.Sample, cfg wfc.Config, solverPtr **wfc.Solver, seedPtr *int64) {
	if sample == nil {
		fmt.Println("no sample loaded")
		return
	}

	seed := seedFromEnvOrTime()
	s, err := wfc.New(sample, cfg, seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build solver: %v\n", err)
		return
	}
	*solverPtr = s
	*seedPtr = seed

	var done, contradicted int
	for attempt := 1; attempt <= maxRetryAttempts; attempt++ {
		s.Run()

		switch s.State() {
		case wfc.Done:
			done++
			Log().Infof("retry attempt %d: Done", attempt)
			fmt.Printf("retry: succeeded on attempt %d/%d (done=%d, contradicted=%d)\n", attempt, maxRetryAttempts, done, contradicted)
			return
		case wfc.Contradicted:
			contradicted++
			Log().Warnf("retry attempt %d: Contradicted", attempt)
		}

		if attempt < maxRetryAttempts {
			s.Reset()
		}
	}

	fmt.Printf("retry: exhausted %d attempts (done=%d, contradicted=%d)\n", maxRetryAttempts, done, contradicted)
}
