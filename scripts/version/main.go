// Prints the version stamped into the relpub binary by scripts/build:
// the nearest git tag (dirty-marked), or the bare commit hash before the
// first release tag exists.
package main

import (
	"fmt"
	"os/exec"
	"strings"
)

// fallbackVersion matches the default of internal/app.Version, so an
// untagged or git-less build is labelled consistently.
const fallbackVersion = "dev"

func main() {
	out, err := exec.Command("git", "describe", "--tags", "--always", "--dirty").Output()
	if err != nil {
		fmt.Print(fallbackVersion)
		return
	}
	fmt.Print(strings.TrimSpace(string(out)))
}
