//go:build !(tinygo && bootdebug)

package app

import "brass/hal"

func bootStep(hal.HAL, string) {}
