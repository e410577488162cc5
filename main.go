package main

import "job-market-api/app"

func main() {
	app.Run()
}
