package mocks

//go:generate mockgen -source=../port/agent/agent.go -destination=agent.go -package=mocks -mock_names=Repository=MockAgentRepository
//go:generate mockgen -source=../port/agent/pool.go -destination=pool.go -package=mocks
//go:generate mockgen -source=../port/embedding/embedding.go -destination=embedding.go -package=mocks
//go:generate mockgen -source=../port/ledger/ledger.go -destination=ledger.go -package=mocks
//go:generate mockgen -source=../port/wallet/wallet.go -destination=wallet.go -package=mocks -mock_names=Reader=MockWalletReader
//go:generate mockgen -source=../port/apikey/apikey.go -destination=apikey.go -package=mocks -mock_names=Reader=MockAPIKeyReader
//go:generate mockgen -source=../port/dispatch/dispatch.go -destination=dispatch.go -package=mocks
//go:generate mockgen -source=../port/ranker/ranker.go -destination=ranker.go -package=mocks
//go:generate mockgen -source=../port/settlement/settlement.go -destination=settlement.go -package=mocks -mock_names=Journal=MockSettlementJournal
//go:generate mockgen -source=../port/eventbus/eventbus.go -destination=eventbus.go -package=mocks
//go:generate mockgen -source=../port/locker/locker.go -destination=locker.go -package=mocks
