//go:build !fips

package backend

const fipsBuild = false
