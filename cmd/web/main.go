package main

import "rtw_backend/internal/app"

func main() {
	app.Run()
}
