// Command tokenkeys retrieves a JSON Web Key Set from an XSUAA or IAS token
// keys endpoint and prints it to stdout.
//
//	tokenkeys fetch https://tenant.accounts.example.com/oauth2/certs --tenant 8e1b...
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
