// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

// Package useragent derives browser, OS and device attributes from a raw
// User-Agent header.
package useragent

import (
	"strings"

	ua "github.com/mileusna/useragent"

	"github.com/tomtom215/footfall/internal/models"
)

// Info is the parsed form of a User-Agent string. Every field is populated:
// attributes that cannot be determined hold models.Unknown, and DeviceType
// falls back to models.DefaultDeviceType.
type Info struct {
	Browser        string
	BrowserVersion string
	OS             string
	OSVersion      string
	DeviceType     string
	DeviceModel    string
	DeviceVendor   string
}

// Device type values.
const (
	DeviceTypeMobile = "mobile"
	DeviceTypeTablet = "tablet"
	DeviceTypeBot    = "bot"
)

// Parse never fails. An empty or unrecognised string yields an Info with
// all attributes set to models.Unknown.
func Parse(raw string) Info {
	parsed := ua.Parse(raw)

	info := Info{
		Browser:        orUnknown(parsed.Name),
		BrowserVersion: orUnknown(parsed.Version),
		OS:             orUnknown(parsed.OS),
		OSVersion:      orUnknown(parsed.OSVersion),
		DeviceType:     deviceType(parsed),
		DeviceModel:    orUnknown(parsed.Device),
	}
	info.DeviceVendor = vendorFor(parsed.Device, parsed.OS)

	return info
}

// ApplyTo copies the parsed attributes onto a device descriptor, leaving the
// self-reported fields untouched.
func (i Info) ApplyTo(d *models.Device) {
	d.Browser = i.Browser
	d.BrowserVersion = i.BrowserVersion
	d.OS = i.OS
	d.OSVersion = i.OSVersion
	d.DeviceType = i.DeviceType
	d.DeviceModel = i.DeviceModel
	d.DeviceVendor = i.DeviceVendor
}

func deviceType(parsed ua.UserAgent) string {
	switch {
	case parsed.Bot:
		return DeviceTypeBot
	case parsed.Tablet:
		return DeviceTypeTablet
	case parsed.Mobile:
		return DeviceTypeMobile
	default:
		return models.DefaultDeviceType
	}
}

// vendorPrefixes maps lower-cased model prefixes to manufacturers.
var vendorPrefixes = []struct {
	prefix string
	vendor string
}{
	{"iphone", "Apple"},
	{"ipad", "Apple"},
	{"ipod", "Apple"},
	{"macintosh", "Apple"},
	{"sm-", "Samsung"},
	{"gt-", "Samsung"},
	{"galaxy", "Samsung"},
	{"samsung", "Samsung"},
	{"pixel", "Google"},
	{"nexus", "Google"},
	{"redmi", "Xiaomi"},
	{"mi ", "Xiaomi"},
	{"poco", "Xiaomi"},
	{"huawei", "Huawei"},
	{"honor", "Huawei"},
	{"moto", "Motorola"},
	{"oneplus", "OnePlus"},
	{"nokia", "Nokia"},
	{"lg-", "LG"},
}

func vendorFor(model, os string) string {
	m := strings.ToLower(strings.TrimSpace(model))
	for _, vp := range vendorPrefixes {
		if strings.HasPrefix(m, vp.prefix) {
			return vp.vendor
		}
	}
	switch os {
	case ua.IOS, ua.MacOS:
		return "Apple"
	}
	return models.Unknown
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return models.Unknown
	}
	return s
}
