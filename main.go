package main

import (
	"github.com/go-aurio/aurio/cmd/aurioctl"
	_ "github.com/go-aurio/aurio/hosts/malgo"
	_ "github.com/go-aurio/aurio/hosts/null"
	_ "github.com/go-aurio/aurio/hosts/portaudio"
	"github.com/go-aurio/aurio/internal/recovery"
)

func main() {
	defer recovery.HandlePanic()
	aurioctl.Execute()
}
