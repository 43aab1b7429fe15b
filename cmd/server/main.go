package main

import "github.com/souma9830/travel-agency-website/internal/app"

func main() {
	app.Run()
}
