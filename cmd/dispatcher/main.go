package main

import (
	"github.com/eatech/platform/internal/app/dispatcher"
	"github.com/eatech/platform/internal/config"
)

func main() {
	config.MustInit()
	dispatcher.MustNewApp().Run()
}
