// Package aurioctl is a cobra CLI for exercising aurio from the
// command line: listing hosts and devices, and playing a test tone.
package aurioctl

import (
	"fmt"
	"os"

	"github.com/go-aurio/aurio/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "aurioctl",
	Short: "Inspect audio hosts and devices, and play a test tone",
	Long:  `aurioctl enumerates the audio hosts and devices aurio can see on this machine, and can drive an output device with a sine tone for manual testing.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "execution error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("host", "H", "", "host name to restrict to (empty selects the platform default)")
	rootCmd.PersistentFlags().IntP("device", "d", -1, "device index (-1 for the host's default)")
	rootCmd.PersistentFlags().BoolP("debug", "D", false, "enable debug output")

	cobra.CheckErr(viper.BindPFlag("host", rootCmd.PersistentFlags().Lookup("host")))
	cobra.CheckErr(viper.BindPFlag("device_index", rootCmd.PersistentFlags().Lookup("device")))
	cobra.CheckErr(viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")))

	rootCmd.AddCommand(listHostsCmd)
	rootCmd.AddCommand(listDevicesCmd)
	rootCmd.AddCommand(toneCmd)
}

func initConfig() {
	if err := config.Init(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
}
