package memory_test

import (
	"testing"

	"github.com/goganux/texas-career-path-explorer/pkg/adapters/memory"
	"github.com/goganux/texas-career-path-explorer/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunSessionStoreContract(t, store)
}
