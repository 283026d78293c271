// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Konstantin Vogel

package thz

// Base register layout shared by all supported firmware versions. Field
// offsets are in nibbles from the start of the register data (code echo
// included); several status flags share a byte, which is why addressing is
// nibble-granular. Version overlays in map_versions.go stack on top.
var baseRegisters = []Register{
	{
		Code: "FB",
		Name: "sGlobal",
		Fields: []Field{
			{Name: "collectorTemp", Offset: 2, Length: 4, Kind: KindSigned, Scale: 10, Unit: "°C"},
			{Name: "outsideTemp", Offset: 6, Length: 4, Kind: KindSigned, Scale: 10, Unit: "°C"},
			{Name: "flowTemp", Offset: 10, Length: 4, Kind: KindSigned, Scale: 10, Unit: "°C"},
			{Name: "returnTemp", Offset: 14, Length: 4, Kind: KindSigned, Scale: 10, Unit: "°C"},
			{Name: "hotGasTemp", Offset: 18, Length: 4, Kind: KindSigned, Scale: 10, Unit: "°C"},
			{Name: "dhwTemp", Offset: 22, Length: 4, Kind: KindSigned, Scale: 10, Unit: "°C"},
			{Name: "flowTempHC2", Offset: 26, Length: 4, Kind: KindSigned, Scale: 10, Unit: "°C"},
			{Name: "insideTemp", Offset: 30, Length: 4, Kind: KindSigned, Scale: 10, Unit: "°C"},
			{Name: "evaporatorTemp", Offset: 34, Length: 4, Kind: KindSigned, Scale: 10, Unit: "°C"},
			{Name: "condenserTemp", Offset: 38, Length: 4, Kind: KindSigned, Scale: 10, Unit: "°C"},
			{Name: "dhwPump", Offset: 42, Length: 1, Kind: KindBit, Bit: 0},
			{Name: "heatingCircuitPump", Offset: 42, Length: 1, Kind: KindBit, Bit: 1},
			{Name: "solarPump", Offset: 42, Length: 1, Kind: KindBit, Bit: 3},
			{Name: "mixerOpen", Offset: 43, Length: 1, Kind: KindBit, Bit: 0},
			{Name: "mixerClosed", Offset: 43, Length: 1, Kind: KindBit, Bit: 1},
			{Name: "heatPipeValve", Offset: 43, Length: 1, Kind: KindBit, Bit: 2},
			{Name: "diverterValve", Offset: 43, Length: 1, Kind: KindBit, Bit: 3},
			{Name: "boosterStage3", Offset: 44, Length: 1, Kind: KindBit, Bit: 0},
			{Name: "boosterStage2", Offset: 44, Length: 1, Kind: KindBit, Bit: 1},
			{Name: "boosterStage1", Offset: 44, Length: 1, Kind: KindBit, Bit: 2},
			{Name: "windowOpen", Offset: 45, Length: 1, Kind: KindBit, Bit: 2},
			{Name: "compressor", Offset: 45, Length: 1, Kind: KindBit, Bit: 3},
			{Name: "evuRelease", Offset: 46, Length: 1, Kind: KindBit, Bit: 0},
			{Name: "ovenFireplace", Offset: 46, Length: 1, Kind: KindBit, Bit: 1},
			{Name: "STB", Offset: 46, Length: 1, Kind: KindBit, Bit: 2},
			{Name: "quickAirVent", Offset: 46, Length: 1, Kind: KindBit, Bit: 3},
			{Name: "highPressureSensor", Offset: 47, Length: 1, Kind: KindNBit, Bit: 0},
			{Name: "lowPressureSensor", Offset: 47, Length: 1, Kind: KindNBit, Bit: 1},
			{Name: "evaporatorIceMonitor", Offset: 47, Length: 1, Kind: KindBit, Bit: 2},
			{Name: "signalAnode", Offset: 47, Length: 1, Kind: KindBit, Bit: 3},
			{Name: "outputVentilatorPower", Offset: 48, Length: 4, Kind: KindUnsigned, Scale: 10, Unit: "%"},
			{Name: "inputVentilatorPower", Offset: 52, Length: 4, Kind: KindUnsigned, Scale: 10, Unit: "%"},
			{Name: "mainVentilatorPower", Offset: 56, Length: 4, Kind: KindUnsigned, Scale: 10, Unit: "%"},
			{Name: "outputVentilatorSpeed", Offset: 60, Length: 4, Kind: KindUnsigned, Unit: "rpm"},
			{Name: "inputVentilatorSpeed", Offset: 64, Length: 4, Kind: KindUnsigned, Unit: "rpm"},
			{Name: "mainVentilatorSpeed", Offset: 68, Length: 4, Kind: KindUnsigned, Unit: "rpm"},
			{Name: "outsideTempFiltered", Offset: 72, Length: 4, Kind: KindSigned, Scale: 10, Unit: "°C"},
			{Name: "relHumidity", Offset: 76, Length: 4, Kind: KindSigned, Scale: 10, Unit: "%"},
			{Name: "dewPoint", Offset: 80, Length: 4, Kind: KindSigned, Scale: 10, Unit: "°C"},
			{Name: "P_Nd", Offset: 84, Length: 4, Kind: KindSigned, Scale: 100, Unit: "bar"},
			{Name: "P_Hd", Offset: 88, Length: 4, Kind: KindSigned, Scale: 100, Unit: "bar"},
			{Name: "actualPower_Qc", Offset: 92, Length: 8, Kind: KindRaw, Unit: "kW"},
			{Name: "actualPower_Pel", Offset: 100, Length: 8, Kind: KindRaw, Unit: "kW"},
			{Name: "flowRate", Offset: 108, Length: 4, Kind: KindUnsigned, Scale: 100, Unit: "l/min"},
			{Name: "p_HCw", Offset: 112, Length: 4, Kind: KindUnsigned, Scale: 100, Unit: "bar"},
			{Name: "humidityAirOut", Offset: 152, Length: 4, Kind: KindUnsigned, Scale: 100, Unit: "%"},
		},
	},
	{
		Code: "F2",
		Name: "sControl",
		Fields: []Field{
			{Name: "heatRequest", Offset: 2, Length: 2, Kind: KindUnsigned},
			{Name: "heatRequest2", Offset: 4, Length: 2, Kind: KindUnsigned},
			{Name: "hcStage", Offset: 6, Length: 2, Kind: KindUnsigned},
			{Name: "dhwStage", Offset: 8, Length: 2, Kind: KindUnsigned},
			{Name: "heatStageControlModul", Offset: 10, Length: 2, Kind: KindUnsigned},
			{Name: "compBlockTime", Offset: 12, Length: 4, Kind: KindSigned, Unit: "min"},
			{Name: "pasteurisationMode", Offset: 16, Length: 2, Kind: KindUnsigned},
			{Name: "defrostEvaporator", Offset: 18, Length: 2, Kind: KindRaw},
			{Name: "compressor", Offset: 20, Length: 1, Kind: KindBit, Bit: 0},
			{Name: "boosterStage1", Offset: 20, Length: 1, Kind: KindBit, Bit: 1},
			{Name: "solarPump", Offset: 20, Length: 1, Kind: KindBit, Bit: 2},
			{Name: "boosterStage2", Offset: 20, Length: 1, Kind: KindBit, Bit: 3},
			{Name: "heatingCircuitPump", Offset: 21, Length: 1, Kind: KindBit, Bit: 0},
			{Name: "dhwPump", Offset: 21, Length: 1, Kind: KindBit, Bit: 1},
			{Name: "diverterValve", Offset: 21, Length: 1, Kind: KindBit, Bit: 2},
			{Name: "heatPipeValve", Offset: 21, Length: 1, Kind: KindBit, Bit: 3},
			{Name: "mixerClosed", Offset: 23, Length: 1, Kind: KindBit, Bit: 0},
			{Name: "mixerOpen", Offset: 23, Length: 1, Kind: KindBit, Bit: 1},
			{Name: "sensorBits1", Offset: 24, Length: 2, Kind: KindRaw},
			{Name: "sensorBits2", Offset: 26, Length: 2, Kind: KindRaw},
			{Name: "boostBlockTimeAfterPumpStart", Offset: 28, Length: 4, Kind: KindSigned, Unit: "min"},
			{Name: "boostBlockTimeAfterHD", Offset: 32, Length: 4, Kind: KindSigned, Unit: "min"},
		},
	},
	{
		Code: "F3",
		Name: "sDHW",
		Fields: []Field{
			{Name: "dhwTemp", Offset: 2, Length: 4, Kind: KindSigned, Scale: 10, Unit: "°C"},
			{Name: "outsideTemp", Offset: 6, Length: 4, Kind: KindSigned, Scale: 10, Unit: "°C"},
			{Name: "dhwSetTemp", Offset: 10, Length: 4, Kind: KindSigned, Scale: 10, Unit: "°C"},
			{Name: "compBlockTime", Offset: 14, Length: 4, Kind: KindSigned, Unit: "min"},
			{Name: "out", Offset: 18, Length: 4, Kind: KindRaw},
			{Name: "heatBlockTime", Offset: 22, Length: 4, Kind: KindSigned, Unit: "min"},
			{Name: "dhwBoosterStage", Offset: 26, Length: 2, Kind: KindUnsigned},
			{Name: "pasteurisationMode", Offset: 30, Length: 2, Kind: KindUnsigned},
			{Name: "dhwOpMode", Offset: 32, Length: 2, Kind: KindEnum, Enum: opModeNames},
		},
	},
	{
		Code: "F4",
		Name: "sHC1",
		Fields: []Field{
			{Name: "outsideTemp", Offset: 2, Length: 4, Kind: KindSigned, Scale: 10, Unit: "°C"},
			{Name: "returnTemp", Offset: 10, Length: 4, Kind: KindSigned, Scale: 10, Unit: "°C"},
			{Name: "integralHeat", Offset: 14, Length: 4, Kind: KindSigned, Unit: "Kmin"},
			{Name: "flowTemp", Offset: 18, Length: 4, Kind: KindSigned, Scale: 10, Unit: "°C"},
			{Name: "heatSetTemp", Offset: 22, Length: 4, Kind: KindSigned, Scale: 10, Unit: "°C"},
			{Name: "heatTemp", Offset: 26, Length: 4, Kind: KindSigned, Scale: 10, Unit: "°C"},
			{Name: "onHysteresisNo", Offset: 30, Length: 2, Kind: KindUnsigned},
			{Name: "offHysteresisNo", Offset: 32, Length: 2, Kind: KindUnsigned},
			{Name: "hcBoosterStage", Offset: 34, Length: 2, Kind: KindUnsigned},
			{Name: "seasonMode", Offset: 36, Length: 2, Kind: KindEnum, Enum: seasonModeNames},
			{Name: "integralSwitch", Offset: 42, Length: 4, Kind: KindSigned, Unit: "Kmin"},
			{Name: "hcOpMode", Offset: 46, Length: 2, Kind: KindEnum, Enum: opModeNames},
			{Name: "roomSetTemp", Offset: 54, Length: 4, Kind: KindSigned, Scale: 10, Unit: "°C"},
			{Name: "insideTempRC", Offset: 66, Length: 4, Kind: KindSigned, Scale: 10, Unit: "°C"},
		},
	},
	{
		Code: "FC",
		Name: "sTime",
		Fields: []Field{
			{Name: "weekday", Offset: 3, Length: 1, Kind: KindWeekday},
			{Name: "hour", Offset: 4, Length: 2, Kind: KindUnsigned},
			{Name: "minute", Offset: 6, Length: 2, Kind: KindUnsigned},
			{Name: "second", Offset: 8, Length: 2, Kind: KindUnsigned},
			{Name: "year", Offset: 10, Length: 2, Kind: KindYear},
			{Name: "month", Offset: 12, Length: 2, Kind: KindUnsigned},
			{Name: "day", Offset: 14, Length: 2, Kind: KindUnsigned},
		},
	},
	{
		Code: "FD",
		Name: "sFirmware",
		Fields: []Field{
			{Name: "version", Offset: 2, Length: 4, Kind: KindVersion},
		},
	},
	{
		Code: "FE",
		Name: "sFirmware-Id",
		Fields: []Field{
			{Name: "hardware", Offset: 28, Length: 2, Kind: KindUnsigned},
			{Name: "software", Offset: 30, Length: 4, Kind: KindVersion},
			{Name: "releaseDate", Offset: 34, Length: 22, Kind: KindASCII},
		},
	},
	{
		Code: "09",
		Name: "sHistory",
		Fields: []Field{
			{Name: "compressorHeating", Offset: 2, Length: 4, Kind: KindUnsigned, Unit: "h"},
			{Name: "compressorCooling", Offset: 6, Length: 4, Kind: KindUnsigned, Unit: "h"},
			{Name: "compressorDHW", Offset: 10, Length: 4, Kind: KindUnsigned, Unit: "h"},
			{Name: "boosterDHW", Offset: 14, Length: 4, Kind: KindUnsigned, Unit: "h"},
			{Name: "boosterHeating", Offset: 18, Length: 4, Kind: KindUnsigned, Unit: "h"},
		},
	},
	{
		Code: "D1",
		Name: "sLast10errors",
		Fields: []Field{
			{Name: "numberOfFaults", Offset: 2, Length: 2, Kind: KindUnsigned},
		},
	},
	{
		Code: "17",
		Name: "pDefrostEva",
		Fields: []Field{
			{Name: "p01RoomTempDay", Offset: 2, Length: 4, Kind: KindUnsigned, Scale: 10, Unit: "°C"},
			{Name: "p02RoomTempNight", Offset: 6, Length: 4, Kind: KindUnsigned, Scale: 10, Unit: "°C"},
			{Name: "p04DHWTempDay", Offset: 14, Length: 4, Kind: KindUnsigned, Scale: 10, Unit: "°C"},
			{Name: "p07FanStageDay", Offset: 26, Length: 2, Kind: KindUnsigned},
			{Name: "p08FanStageNight", Offset: 28, Length: 2, Kind: KindUnsigned},
		},
	},
	{
		Code: "0A0176",
		Name: "sProgram",
		Fields: []Field{
			{Name: "filterUp", Offset: 6, Length: 1, Kind: KindBit, Bit: 0},
			{Name: "filterDown", Offset: 6, Length: 1, Kind: KindBit, Bit: 1},
			{Name: "filterBoth", Offset: 7, Length: 1, Kind: KindBit, Bit: 0},
			{Name: "ventStage", Offset: 7, Length: 1, Kind: KindBit, Bit: 1},
			{Name: "pumpHC", Offset: 7, Length: 1, Kind: KindBit, Bit: 2},
			{Name: "defrost", Offset: 7, Length: 1, Kind: KindBit, Bit: 3},
			{Name: "heatingDHW", Offset: 8, Length: 1, Kind: KindBit, Bit: 0},
			{Name: "boosterHC", Offset: 8, Length: 1, Kind: KindBit, Bit: 1},
			{Name: "service", Offset: 8, Length: 1, Kind: KindBit, Bit: 2},
			{Name: "switchingProg", Offset: 9, Length: 1, Kind: KindBit, Bit: 0},
			{Name: "compressor", Offset: 9, Length: 1, Kind: KindBit, Bit: 1},
			{Name: "heatingHC", Offset: 9, Length: 1, Kind: KindBit, Bit: 2},
			{Name: "cooling", Offset: 9, Length: 1, Kind: KindBit, Bit: 3},
		},
	},
}
