package main

import (
	"github.com/eatech/platform/internal/app/terminal"
	"github.com/eatech/platform/internal/config"
)

func main() {
	config.MustInit()
	terminal.MustNewApp().Run()
}
