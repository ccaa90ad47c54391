package utils

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ShortenAddress checksums an address and keeps the first and last characters,
// e.g. 0xAbCd…1234. chars is the number of hex digits kept on each side.
func ShortenAddress(address string, chars int) (string, error) {
	if !common.IsHexAddress(address) {
		return "", fmt.Errorf("invalid address %q", address)
	}
	if chars <= 0 {
		chars = 4
	}
	checksummed := common.HexToAddress(address).Hex()
	return checksummed[:chars+2] + "…" + checksummed[len(checksummed)-chars:], nil
}
