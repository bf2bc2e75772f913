//go:build fips

package backend

const fipsBuild = true
