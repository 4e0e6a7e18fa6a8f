package main

import "github.com/workspacekit/workspace-mcp/cmd"

// version is stamped by goreleaser at build time.
var version = "dev"

func main() {
	cmd.SetVersion(version)
	cmd.Execute()
}
