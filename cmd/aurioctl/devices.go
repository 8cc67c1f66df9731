package aurioctl

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var listDevicesCmd = &cobra.Command{
	Use:   "list-devices",
	Short: "List the devices a host exposes",
	RunE: func(_ *cobra.Command, _ []string) error {
		h, err := resolveHost(viper.GetString("host"))
		if err != nil {
			return err
		}

		devices, err := h.Devices()
		if err != nil {
			return fmt.Errorf("enumerate devices: %w", err)
		}
		if len(devices) == 0 {
			fmt.Printf("%s: no devices\n", h.ID())
			return nil
		}

		for i, d := range devices {
			desc, err := d.Description()
			if err != nil {
				fmt.Printf("[%d] error: %v\n", i, err)
				continue
			}
			dir := "in/out"
			switch {
			case d.SupportsInput() && !d.SupportsOutput():
				dir = "in"
			case d.SupportsOutput() && !d.SupportsInput():
				dir = "out"
			}
			fmt.Printf("[%d] %-32s %s\n", i, desc.Name(), dir)
		}
		return nil
	},
}
