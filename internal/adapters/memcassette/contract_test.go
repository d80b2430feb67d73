package memcassette_test

import (
	"testing"

	"github.com/Overland-East-Bay/tapedeck/internal/adapters/contracttest"
	"github.com/Overland-East-Bay/tapedeck/internal/adapters/memcassette"
	"github.com/Overland-East-Bay/tapedeck/internal/ports/out/cassettestore"
)

func TestMemStore_Contract(t *testing.T) {
	t.Parallel()
	contracttest.RunCassetteStore(t, func(t *testing.T) (cassettestore.Store, contracttest.CleanupFunc) {
		return memcassette.NewStore(), nil
	})
}
