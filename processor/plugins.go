package processor

import "sync"

var (
	registryLock        sync.Mutex
	registeredContracts []string
)

func init() {
	for _, c := range []string{"SerBin", "DeBin", "SerJson", "DeJson", "SerRon", "DeRon"} {
		RegisterContract(c)
	}
}

// RegisterContract registers a contract that is implemented for every
// declaration when a Config does not name its contracts explicitly.
// Registering the same contract twice has no effect.
func RegisterContract(name string) {
	registryLock.Lock()
	defer registryLock.Unlock()
	for _, c := range registeredContracts {
		if c == name {
			return
		}
	}
	registeredContracts = append(registeredContracts, name)
}

// AllRegisteredContracts returns the list of all registered contracts, in
// registration order.
func AllRegisteredContracts() []string {
	registryLock.Lock()
	defer registryLock.Unlock()
	contracts := make([]string, len(registeredContracts))
	copy(contracts, registeredContracts)
	return contracts
}
