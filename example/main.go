package main

import (
	"encoding/hex"
	"fmt"
	"log"

	"github.com/not-for-prod/hdkey/bip44"
	cointype "github.com/not-for-prod/hdkey/coin-type"
	"github.com/not-for-prod/hdkey/node"
	"github.com/not-for-prod/hdkey/xkey"
)

func main() {
	// Generate a 12-word mnemonic (128 bits entropy)
	mnemonic, err := bip44.GenerateMnemonic(128)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Mnemonic: %s\n", mnemonic)

	root, err := bip44.FromMnemonic(mnemonic, "", node.Mainnet, nil)
	if err != nil {
		log.Fatal(err)
	}

	// Ethereum first receiving address: m/44'/60'/0'/0/0
	ethKey, err := bip44.FromDerivationPath(root, cointype.Ether, 0, 0, 0)
	if err != nil {
		log.Fatal(err)
	}
	address, err := ethKey.Address()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Ethereum Address: %s\n", address)

	xprv, err := xkey.Encode(ethKey.Node)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Extended Private Key: %s\n", xprv)

	// TRON first receiving address: m/44'/195'/0'/0/0
	tronKey, err := bip44.FromDerivationPath(root, cointype.Tron, 0, 0, 0)
	if err != nil {
		log.Fatal(err)
	}
	tronAddress, err := bip44.TronAddress(tronKey)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("TRON Address: %s\n", tronAddress)

	privateKey := tronKey.PrivateKey()
	publicKey, err := tronKey.PublicKey()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Private Key: %s\n", hex.EncodeToString(privateKey))
	fmt.Printf("Public Key: %s\n", hex.EncodeToString(publicKey))
}
