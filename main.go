package main

import "task-service.com/task-service/cmd"

func main() {
	cmd.Execute()
}
