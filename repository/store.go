package repository

import domainLiveness "github.com/photoframe/photoframe/domains/liveness"

var (
	_ domainLiveness.ConnectivityStore = (*DynamoConnectivityStore)(nil)
	_ domainLiveness.ConnectivityStore = (*ValkeyConnectivityStore)(nil)
	_ domainLiveness.ConnectivityStore = (*GormConnectivityStore)(nil)
	_ domainLiveness.ConnectivityStore = (*MemoryConnectivityStore)(nil)

	_ domainLiveness.TriggerState = (*ValkeyConnectivityStore)(nil)
	_ domainLiveness.TriggerState = (*GormConnectivityStore)(nil)
	_ domainLiveness.TriggerState = (*MemoryConnectivityStore)(nil)
)
