package core

import (
	"fmt"

	"lending/pkg/id"
)

// TreasuryAddress deterministic address of the pool holdings of the asset
func TreasuryAddress(assetID string) string {
	return id.UUIDFromString(fmt.Sprintf("treasury:%s", assetID))
}
