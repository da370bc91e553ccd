package servo

import "github.com/servolink-protocol/servolink-go/pkg/reg"

// Predefined registers of the standard drive family. Motion operations use
// these directly so they work without a dictionary; callers may also pass
// them to the raw and scaled access operations.
var (
	// RegControlWord drives the state machine.
	RegControlWord = &reg.Register{
		ID: "CTL_WORD", Address: 0x6040,
		DType: reg.DTypeU16, Access: reg.AccessRW,
		Range: reg.DefaultRange(reg.DTypeU16),
	}

	// RegStatusWord reports the drive state.
	RegStatusWord = &reg.Register{
		ID: "STS_WORD", Address: 0x6041,
		DType: reg.DTypeU16, Access: reg.AccessRO,
		Range: reg.DefaultRange(reg.DTypeU16),
	}

	// RegOpMode selects the operation mode.
	RegOpMode = &reg.Register{
		ID: "OP_MODE", Address: 0x6060,
		DType: reg.DTypeS8, Access: reg.AccessRW,
		Range: reg.DefaultRange(reg.DTypeS8),
	}

	// RegOpModeDisplay reports the active operation mode.
	RegOpModeDisplay = &reg.Register{
		ID: "OP_MODE_DISP", Address: 0x6061,
		DType: reg.DTypeS8, Access: reg.AccessRO,
		Range: reg.DefaultRange(reg.DTypeS8),
	}

	// RegOLVoltage is the open loop voltage command, relative to the bus
	// voltage.
	RegOLVoltage = &reg.Register{
		ID: "OL_VOLTAGE", Address: 0x2701,
		DType: reg.DTypeS16, Access: reg.AccessRW, Phy: reg.PhyVoltRel,
		Range: reg.DefaultRange(reg.DTypeS16),
	}

	// RegOLFrequency is the open loop frequency command in deci-hertz.
	RegOLFrequency = &reg.Register{
		ID: "OL_FREQUENCY", Address: 0x2700,
		DType: reg.DTypeS16, Access: reg.AccessRW,
		Range: reg.DefaultRange(reg.DTypeS16),
	}

	// RegTorqueActual reports the actual torque.
	RegTorqueActual = &reg.Register{
		ID: "TORQUE_ACT", Address: 0x6077,
		DType: reg.DTypeS16, Access: reg.AccessRO, Phy: reg.PhyTorque,
		Range: reg.DefaultRange(reg.DTypeS16),
	}

	// RegTorqueTarget is the torque set-point.
	RegTorqueTarget = &reg.Register{
		ID: "TORQUE_TGT", Address: 0x6071,
		DType: reg.DTypeS16, Access: reg.AccessRW, Phy: reg.PhyTorque,
		Range: reg.DefaultRange(reg.DTypeS16),
	}

	// RegPositionActual reports the actual position.
	RegPositionActual = &reg.Register{
		ID: "POS_ACT", Address: 0x6064,
		DType: reg.DTypeS32, Access: reg.AccessRO, Phy: reg.PhyPos,
		Range: reg.DefaultRange(reg.DTypeS32),
	}

	// RegPositionTarget is the position set-point.
	RegPositionTarget = &reg.Register{
		ID: "POS_TGT", Address: 0x607A,
		DType: reg.DTypeS32, Access: reg.AccessRW, Phy: reg.PhyPos,
		Range: reg.DefaultRange(reg.DTypeS32),
	}

	// RegVelocityActual reports the actual velocity.
	RegVelocityActual = &reg.Register{
		ID: "VEL_ACT", Address: 0x606C,
		DType: reg.DTypeS32, Access: reg.AccessRO, Phy: reg.PhyVel,
		Range: reg.DefaultRange(reg.DTypeS32),
	}

	// RegVelocityTarget is the velocity set-point.
	RegVelocityTarget = &reg.Register{
		ID: "VEL_TGT", Address: 0x60FF,
		DType: reg.DTypeS32, Access: reg.AccessRW, Phy: reg.PhyVel,
		Range: reg.DefaultRange(reg.DTypeS32),
	}

	// RegPositionRes is the position resolution in counts per revolution.
	RegPositionRes = &reg.Register{
		ID: "POS_RES", Address: 0x2703,
		DType: reg.DTypeU32, Access: reg.AccessRO,
		Range: reg.DefaultRange(reg.DTypeU32),
	}

	// RegVelocityRes is the velocity resolution in counts per revolution
	// per second.
	RegVelocityRes = &reg.Register{
		ID: "VEL_RES", Address: 0x2704,
		DType: reg.DTypeU32, Access: reg.AccessRO,
		Range: reg.DefaultRange(reg.DTypeU32),
	}
)
