package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func walkCommands(cmd *cobra.Command, fn func(*cobra.Command)) {
	fn(cmd)
	for _, child := range cmd.Commands() {
		walkCommands(child, fn)
	}
}

func TestCommandsAreDocumented(t *testing.T) {
	walkCommands(rootCmd, func(cmd *cobra.Command) {
		if cmd.Short == "" {
			t.Errorf("%s has no short description", cmd.CommandPath())
		}
		cmd.LocalFlags().VisitAll(func(flag *pflag.Flag) {
			if flag.Usage == "" {
				t.Errorf("%s --%s has no usage text", cmd.CommandPath(), flag.Name)
			}
		})
	})
}

func TestFlagShorthandsDoNotShadowGlobals(t *testing.T) {
	global := map[string]string{}
	rootCmd.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
		if flag.Shorthand != "" {
			global[flag.Shorthand] = flag.Name
		}
	})

	walkCommands(rootCmd, func(cmd *cobra.Command) {
		if cmd == rootCmd {
			return
		}
		cmd.LocalNonPersistentFlags().VisitAll(func(flag *pflag.Flag) {
			if name, ok := global[flag.Shorthand]; ok && flag.Shorthand != "" {
				t.Errorf("%s -%s (--%s) shadows global --%s", cmd.CommandPath(), flag.Shorthand, flag.Name, name)
			}
		})
	})
}

func TestCommandAliasesAreUnique(t *testing.T) {
	walkCommands(rootCmd, func(parent *cobra.Command) {
		seen := map[string]string{}
		for _, cmd := range parent.Commands() {
			for _, name := range append([]string{cmd.Name()}, cmd.Aliases...) {
				if other, ok := seen[name]; ok {
					t.Errorf("%s: %q is used by both %s and %s", parent.CommandPath(), name, other, cmd.Name())
				}
				seen[name] = cmd.Name()
			}
		}
	})
}
