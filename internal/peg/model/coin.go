package model

// Network is the base-chain network the federation operates on.
type Network string

var (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
	Regtest Network = "regtest"
)

// Chain labels one of the two watched blockchains.
type Chain string

var (
	SideChain Chain = "liquid"
	BaseChain Chain = "bitcoin"
)
