package reconciler

import (
	"strings"

	"lteman/internal/config"
	"lteman/internal/constants"
	"lteman/internal/systemd"
)

// Connectivity carries the externally supplied facts the eNodeB command
// line depends on. MMEAddr is "" while the core network has not announced
// itself; BindAddr is "" only when no default network path exists.
type Connectivity struct {
	MMEAddr  string
	BindAddr string
}

// Credentials is the subscriber identity triplet for an attach. The three
// fields are all-or-nothing: a partial triplet reads as absent.
type Credentials struct {
	IMSI string
	K    string
	OPC  string
}

// Complete reports whether all three credential fields are present
func (c Credentials) Complete() bool {
	return c.IMSI != "" && c.K != "" && c.OPC != ""
}

// ComputeEnbSpec deterministically assembles the eNodeB service spec from
// the configuration snapshot and connectivity facts. Flag order is fixed.
// Optional flags are omitted entirely when their source value is absent.
// ready is false while the core-network address is unknown; callers must
// not converge-and-restart in that state.
func ComputeEnbSpec(cfg *config.Config, conn Connectivity) (systemd.ServiceSpec, bool) {
	args := []string{constants.EnbBinary}
	if conn.MMEAddr != "" {
		args = append(args, "--enb.mme_addr="+conn.MMEAddr)
	}
	if conn.BindAddr != "" {
		args = append(args,
			"--enb.gtp_bind_addr="+conn.BindAddr,
			"--enb.s1c_bind_addr="+conn.BindAddr,
		)
	}
	args = append(args,
		"--enb.name="+cfg.Enb.Name,
		"--enb.mcc="+cfg.Enb.MCC,
		"--enb.mnc="+cfg.Enb.MNC,
		"--enb_files.rr_config="+constants.ConfigPath+"/rr.conf",
		"--enb_files.sib_config="+constants.ConfigPath+"/sib.conf",
		"--enb_files.drb_config="+constants.ConfigPath+"/drb.conf",
		constants.ConfigPath+"/enb.conf",
		"--rf.device_name="+cfg.Enb.RFDeviceName,
		"--rf.device_args="+cfg.Enb.RFDeviceArgs,
	)

	spec := systemd.ServiceSpec{
		Name:        constants.EnbService,
		Command:     strings.Join(args, " "),
		User:        constants.ServiceUser,
		Description: "srsLTE eNodeB emulator",
	}
	return spec, conn.MMEAddr != ""
}

// ComputeUeSpec deterministically assembles the UE service spec. The
// credential flags appear only when the full triplet is present.
func ComputeUeSpec(cfg *config.Config, creds Credentials) systemd.ServiceSpec {
	args := []string{constants.UeBinary}
	if creds.Complete() {
		args = append(args,
			"--usim.imsi="+creds.IMSI,
			"--usim.k="+creds.K,
			"--usim.opc="+creds.OPC,
		)
	}
	args = append(args,
		"--usim.algo="+cfg.Ue.UsimAlgo,
		"--nas.apn="+cfg.Ue.NasAPN,
		"--rf.device_name="+cfg.Ue.DeviceName,
		"--rf.device_args="+cfg.Ue.DeviceArgs,
		constants.ConfigPath+"/ue.conf",
	)

	return systemd.ServiceSpec{
		Name:        constants.UeService,
		Command:     strings.Join(args, " "),
		User:        constants.ServiceUser,
		Description: "srsLTE UE emulator",
		// A stopped UE leaves the eNodeB with a stale RNTI; bounce it.
		PostStopCommand: "/bin/systemctl restart " + constants.EnbService,
	}
}
