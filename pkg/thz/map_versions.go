// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Konstantin Vogel

package thz

// Registers that only the 5.39 firmware line (and the later 7.x line built on
// it) answers. Most are single-value queries with a three byte register code.
var registers539 = []Register{
	single("0A033B", "sFlowRate", KindUnsigned, 0, "cl/min"),
	single("0A064F", "sHumMaskingTime", KindUnsigned, 0, "min"),
	single("0A0650", "sHumThreshold", KindUnsigned, 0, "%"),
	single("0A069A", "sHeatingRelPower", KindUnsigned, 0, "%"),
	single("0A069B", "sComprRelPower", KindUnsigned, 0, "%"),
	single("0A069C", "sComprRotUnlimited", KindUnsigned, 0, "Hz"),
	single("0A069D", "sComprRotLimited", KindUnsigned, 0, "Hz"),
	single("0A06A4", "sOutputReduction", KindUnsigned, 0, "%"),
	single("0A06A5", "sOutputIncrease", KindUnsigned, 0, "%"),
	single("0A09D1", "sHumProtection", KindUnsigned, 0, ""),
	single("0A09D2", "sSetHumidityMin", KindUnsigned, 0, "%"),
	single("0A09D3", "sSetHumidityMax", KindUnsigned, 0, "%"),
	single("0B0264", "sDewPointHC1", KindSigned, 10, "°C"),
	single("0C0264", "sDewPointHC2", KindSigned, 10, "°C"),
}

// single builds a one-value register. The value sits right after the three
// byte code echo.
func single(code, name string, kind FieldKind, scale float64, unit string) Register {
	return Register{
		Code: code,
		Name: name,
		Fields: []Field{
			{Name: "value", Offset: 6, Length: 4, Kind: kind, Scale: scale, Unit: unit},
		},
	}
}

// Settings writable on every firmware that accepts writes at all.
var settingsCommon = []Setting{
	{Name: "p01RoomTempDayHC1", Command: "0B0005", Min: 10, Max: 30, Unit: "°C", Encode: EncodeTemp},
	{Name: "p02RoomTempNightHC1", Command: "0B0008", Min: 10, Max: 30, Unit: "°C", Encode: EncodeTemp},
	{Name: "p04DHWsetTempDay", Command: "0A0013", Min: 10, Max: 55, Unit: "°C", Encode: EncodeTemp},
	{Name: "p07FanStageDay", Command: "0A056C", Min: 0, Max: 3, Unit: "", Encode: EncodeClean},
	{Name: "p08FanStageNight", Command: "0A056D", Min: 0, Max: 3, Unit: "", Encode: EncodeClean},
	{Name: "p75PassiveCooling", Command: "0A0575", Min: 0, Max: 2, Unit: "", Encode: EncodeClean},
}

// Cooling and pump-rate parameters introduced with 5.39.
var settings539 = []Setting{
	{Name: "p99PumpRateHC", Command: "0A02CB", Min: 0, Max: 100, Unit: "%", Encode: EncodeTemp},
	{Name: "p99PumpRateDHW", Command: "0A02CC", Min: 0, Max: 100, Unit: "%", Encode: EncodeTemp},
	{Name: "p99CoolingHC1Switch", Command: "0B0287", Min: 0, Max: 1, Unit: "", Encode: EncodeClean},
	{Name: "p99CoolingHC1SetTemp", Command: "0B0582", Min: 12, Max: 27, Unit: "°C", Encode: EncodeTemp},
	{Name: "p99CoolingHC1HysterFlowTemp", Command: "0B0583", Min: 0.5, Max: 5, Unit: "K", Encode: EncodeTemp},
	{Name: "p99CoolingHC1HysterRoomTemp", Command: "0B0584", Min: 0.5, Max: 3, Unit: "K", Encode: EncodeTemp},
	{Name: "p99CoolingHC2Switch", Command: "0C0287", Min: 0, Max: 1, Unit: "", Encode: EncodeClean},
	{Name: "p99CoolingHC2SetTemp", Command: "0C0582", Min: 12, Max: 27, Unit: "°C", Encode: EncodeTemp},
	{Name: "p99CoolingHC2HysterFlowTemp", Command: "0C0583", Min: 0.5, Max: 5, Unit: "K", Encode: EncodeTemp},
	{Name: "p99CoolingHC2HysterRoomTemp", Command: "0C0584", Min: 0.5, Max: 3, Unit: "K", Encode: EncodeTemp},
}

func concatSettings(groups ...[]Setting) []Setting {
	var out []Setting
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// Plain (unsuffixed) versions in ascending order, used as fallback anchors
// when a reported firmware has no exact layout of its own.
var plainVersions = []string{"2.06", "2.14", "4.39", "5.39", "7.02", "7.59"}

var versionMaps = map[string]*RegisterMap{
	"2.06":  buildMap("2.06", nil, nil),
	"2.14":  buildMap("2.14", nil, nil),
	"2.14j": buildMap("2.14j", nil, nil),
	"4.39":  buildMap("4.39", nil, settingsCommon),
	"5.39":  buildMap("5.39", registers539, concatSettings(settingsCommon, settings539)),
	"7.02":  buildMap("7.02", registers539, concatSettings(settingsCommon, settings539)),
	"7.59":  buildMap("7.59", registers539, concatSettings(settingsCommon, settings539)),
}
