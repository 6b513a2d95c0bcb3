package main

import (
	"github.com/eatech/platform/internal/app/platform"
	"github.com/eatech/platform/internal/config"
)

func main() {
	config.MustInit()
	platform.MustNewApp().Run()
}
