package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/brettbedarf/yshell/config"
	"github.com/brettbedarf/yshell/filesystem"
	"github.com/brettbedarf/yshell/internal/util"
	"github.com/brettbedarf/yshell/requests"
	"github.com/brettbedarf/yshell/shell"
)

// Flag names; each is also read from the environment as YSHELL_<NAME>
const (
	debugFlag   = "debug"
	verboseFlag = "verbose"
	configFlag  = "config"
	nodesFlag   = "nodes"
	promptFlag  = "prompt"
	echoFlag    = "echo"
)

const envPrefix = "yshell"

func main() {
	status := 0
	rootCmd := newRootCmd(&status)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
	os.Exit(status)
}

func newRootCmd(status *int) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "yshell",
		Short: "An interactive shell over an in-memory filesystem",
		Long: `yshell reads commands from stdin and runs them against a tree of
files and directories that lives only in memory.

Commands: ` + fmt.Sprint(shell.Commands()),
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return errors.New("operands not permitted")
			}
			return nil
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			*status = run(cfg, v.GetString(nodesFlag))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringP(debugFlag, "@", "", "Debug flags enabling trace logs per component: c commands, i inodes, r resolution, t traversal, y read loop, n node requests, @ all")
	flags.IntP(verboseFlag, "v", config.WarnVerbose, "Log verbosity level between 1 (error) and 5 (trace)")
	flags.StringP(configFlag, "c", "", "Path to a YAML or JSON config file")
	flags.StringP(nodesFlag, "n", "", "Path to a YAML or JSON nodes def file loaded before reading commands")
	flags.StringP(promptFlag, "p", config.DefaultPrompt, "Initial prompt")
	flags.String(echoFlag, string(config.DefaultEcho), "Echo input lines: auto, always or never")

	// Bind env variables
	if err := v.BindPFlags(flags); err != nil {
		panic(fmt.Sprintf("could not bind flags: %v", err))
	}
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	return cmd
}

// loadConfig layers defaults, the config file, the environment and flags,
// in increasing precedence.
func loadConfig(v *viper.Viper) (*config.Config, error) {
	cfg := config.NewDefaultConfig()
	cfg.ExecName = filepath.Base(os.Args[0])

	if path := v.GetString(configFlag); path != "" {
		override, err := config.LoadConfigOverrideFile(path)
		if err != nil {
			return nil, err
		}
		cfg.Merge(override)
	}

	override := &config.ConfigOverride{}
	if v.IsSet(debugFlag) {
		override.DebugFlags = util.Pointer(v.GetString(debugFlag))
	}
	if v.IsSet(verboseFlag) {
		override.LogLvl = util.Pointer(v.GetInt(verboseFlag))
	}
	if v.IsSet(promptFlag) {
		override.Prompt = util.Pointer(v.GetString(promptFlag))
	}
	if v.IsSet(echoFlag) {
		override.Echo = util.Pointer(config.EchoMode(v.GetString(echoFlag)))
	}
	if err := override.Validate(); err != nil {
		return nil, err
	}
	cfg.Merge(override)
	return cfg, nil
}

func run(cfg *config.Config, nodesDef string) int {
	util.InitializeLogger(cfg.LogLvl)
	util.SetDebugFlags(cfg.DebugFlags)
	logger := util.GetLogger("main")

	logger.Info().Str("exec", cfg.ExecName).Str("debug", cfg.DebugFlags).Str("echo", string(cfg.Echo)).
		Str("nodes", nodesDef).Msg("yshell initializing")

	fs := filesystem.NewFS()
	if nodesDef != "" {
		reqs, err := requests.LoadFile(nodesDef)
		if err != nil {
			// invalid entries are reported here; the valid ones are still applied
			logger.Error().Err(err).Str("nodes", nodesDef).Msg("Failed to load node requests")
		}
		if len(reqs) > 0 {
			requests.Apply(fs, reqs)
		}
	} else {
		logger.Debug().Msg("No nodes file provided")
	}

	interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	sh := shell.New(cfg, fs, os.Stdin, os.Stdout, os.Stderr)
	sh.SetEcho(cfg.WantEcho(interactive))

	status := sh.Run()
	logger.Debug().Int("status", status).Str("fs", fs.ID().String()).Int("inodes", fs.Len()).Msg("Shell exited")
	return status
}
