/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/tristendillon/scriptexport/cmd"

func main() {
	cmd.Execute()
}
