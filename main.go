package main

import "love-diary-backend/cmd"

func main() {
	cmd.Run()
}
