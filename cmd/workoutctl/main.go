package main

import "workoutplanner/internal/cli"

func main() {
	cli.Execute()
}
