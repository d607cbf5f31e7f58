// This program submits transactions to a ledger node and inspects its chain.
package main

import "github.com/sanikak2004/builder-quantum-den-sub002/app/wallet/cli/cmd"

func main() {
	cmd.Execute()
}
