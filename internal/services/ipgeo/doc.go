// Package ipgeo geolocates IP addresses, online through ip-api.com or
// offline from a MaxMind GeoLite2/GeoIP2 City database.
package ipgeo
