/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/members-only/clubhouse/cmd"

func main() {
	cmd.Execute()
}
