package main

import (
	"github.com/oshokin/lamp-warden/cmd/lamp-warden/cmd"
)

func main() {
	cmd.Execute()
}
