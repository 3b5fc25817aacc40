package ethereum

// Contract ABIs, limited to the functions the broker calls.

const stakeContractABI = `[
	{
		"name": "getAddressStake",
		"type": "function",
		"stateMutability": "view",
		"inputs": [{"name": "account", "type": "address"}],
		"outputs": [
			{"name": "client", "type": "address"},
			{"name": "provider", "type": "address"},
			{"name": "userId", "type": "string"},
			{"name": "amount", "type": "uint256"}
		]
	},
	{
		"name": "transferEscrow",
		"type": "function",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "to", "type": "address"},
			{"name": "from", "type": "address"},
			{"name": "amount", "type": "uint256"}
		],
		"outputs": []
	}
]`

const agentRegistryABI = `[
	{
		"name": "registerAgent",
		"type": "function",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "agentAddress", "type": "string"},
			{"name": "agentIdHash", "type": "string"},
			{"name": "ownerId", "type": "string"},
			{"name": "metadataUri", "type": "string"}
		],
		"outputs": []
	}
]`
