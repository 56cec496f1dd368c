package main

import "github/chapool/quickpay-wallet/cmd"

func main() {
	cmd.Execute()
}
