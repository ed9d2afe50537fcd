// SPDX-License-Identifier: MPL-2.0

package main

import cmd "componize/cmd/componize"

func main() {
	cmd.Execute()
}
