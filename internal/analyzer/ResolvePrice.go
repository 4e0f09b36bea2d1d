/*

This file contains the reference price resolver.

The SUSHI/USD price is derived from the token's derived-ETH rate on the
exchange and the ETH/USD rate of the bundle. A missing or non-positive input
makes the price unavailable; it is never reported as zero, because a zero
price would silently understate every dependent metric.

*/

package analyzer

import (
	"errors"
	"math"

	"github.com/carbonswap/sushiswap-analytics/internal/logger"
	"github.com/carbonswap/sushiswap-analytics/internal/types"
)

var priceLogger = logger.GetForComponent("price_resolver")

var ErrPriceUnavailable = errors.New("reference price unavailable")

// ResolveSushiPrice derives the USD-per-SUSHI scalar from the exchange token
// rate and the ETH bundle.
func ResolveSushiPrice(token *types.TokenRate, bundle *types.EthBundle) (float64, error) {
	if token == nil || bundle == nil {
		priceLogger.Warn().
			Bool("tokenPresent", token != nil).
			Bool("bundlePresent", bundle != nil).
			Msg("Price resolver inputs missing")
		return 0, ErrPriceUnavailable
	}

	if token.DerivedETH <= 0 || bundle.EthPrice <= 0 {
		priceLogger.Warn().
			Float64("derivedETH", token.DerivedETH).
			Float64("ethPrice", bundle.EthPrice).
			Msg("Price resolver inputs non-positive")
		return 0, ErrPriceUnavailable
	}

	price := token.DerivedETH * bundle.EthPrice
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		priceLogger.Error().Float64("price", price).Msg("Resolved price is not a positive finite value")
		return 0, ErrPriceUnavailable
	}

	return price, nil
}
