package reconciler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lteman/internal/config"
	"lteman/internal/constants"
)

func TestComputeEnbSpecDeterministic(t *testing.T) {
	cfg := config.Default()
	conn := Connectivity{MMEAddr: "1.2.3.4", BindAddr: "10.0.0.8"}

	first, _ := ComputeEnbSpec(cfg, conn)
	second, _ := ComputeEnbSpec(cfg, conn)

	assert.Equal(t, first, second)
}

func TestComputeEnbSpecFlagOrder(t *testing.T) {
	cfg := config.Default()
	cfg.Enb.MCC = "001"
	cfg.Enb.MNC = "01"

	spec, ready := ComputeEnbSpec(cfg, Connectivity{MMEAddr: "1.2.3.4", BindAddr: "10.0.0.8"})
	require.True(t, ready)
	assert.Equal(t, constants.EnbService, spec.Name)
	assert.Equal(t, constants.ServiceUser, spec.User)

	expected := strings.Join([]string{
		constants.EnbBinary,
		"--enb.mme_addr=1.2.3.4",
		"--enb.gtp_bind_addr=10.0.0.8",
		"--enb.s1c_bind_addr=10.0.0.8",
		"--enb.name=" + cfg.Enb.Name,
		"--enb.mcc=001",
		"--enb.mnc=01",
		"--enb_files.rr_config=/config/rr.conf",
		"--enb_files.sib_config=/config/sib.conf",
		"--enb_files.drb_config=/config/drb.conf",
		"/config/enb.conf",
		"--rf.device_name=zmq",
		"--rf.device_args=" + cfg.Enb.RFDeviceArgs,
	}, " ")
	assert.Equal(t, expected, spec.Command)
}

func TestComputeEnbSpecNotReadyWithoutCoreAddress(t *testing.T) {
	cfg := config.Default()

	spec, ready := ComputeEnbSpec(cfg, Connectivity{BindAddr: "10.0.0.8"})
	assert.False(t, ready)
	assert.True(t, spec.Valid())
	assert.NotContains(t, spec.Command, "--enb.mme_addr")
}

func TestComputeEnbSpecOmitsUnknownBindAddress(t *testing.T) {
	cfg := config.Default()

	spec, ready := ComputeEnbSpec(cfg, Connectivity{MMEAddr: "1.2.3.4"})
	assert.True(t, ready)
	assert.NotContains(t, spec.Command, "--enb.gtp_bind_addr")
	assert.NotContains(t, spec.Command, "--enb.s1c_bind_addr")
	// Never render a flag with an empty value.
	assert.NotContains(t, spec.Command, "= ")
}

func TestCredentialsComplete(t *testing.T) {
	assert.False(t, Credentials{}.Complete())
	assert.False(t, Credentials{IMSI: "001010123456789", K: "abc"}.Complete())
	assert.True(t, Credentials{IMSI: "001010123456789", K: "abc", OPC: "def"}.Complete())
}

func TestComputeUeSpecCredentialsAllOrNothing(t *testing.T) {
	cfg := config.Default()

	partial := ComputeUeSpec(cfg, Credentials{IMSI: "001010123456789", K: "secret"})
	assert.NotContains(t, partial.Command, "--usim.imsi")
	assert.NotContains(t, partial.Command, "--usim.k")
	assert.NotContains(t, partial.Command, "--usim.opc")

	full := ComputeUeSpec(cfg, Credentials{IMSI: "001010123456789", K: "secret", OPC: "opcval"})
	assert.Contains(t, full.Command, "--usim.imsi=001010123456789")
	assert.Contains(t, full.Command, "--usim.k=secret")
	assert.Contains(t, full.Command, "--usim.opc=opcval")

	// Identity flags come before the static tail.
	imsiIdx := strings.Index(full.Command, "--usim.imsi=")
	algoIdx := strings.Index(full.Command, "--usim.algo=")
	assert.Less(t, imsiIdx, algoIdx)
}

func TestComputeUeSpecStaticTail(t *testing.T) {
	cfg := config.Default()

	spec := ComputeUeSpec(cfg, Credentials{})
	assert.Equal(t, constants.UeService, spec.Name)
	assert.Contains(t, spec.Command, "--usim.algo=milenage")
	assert.Contains(t, spec.Command, "--nas.apn=default")
	assert.Contains(t, spec.Command, "--rf.device_name=zmq")
	assert.True(t, strings.HasSuffix(spec.Command, "/config/ue.conf"))
	assert.Equal(t, "/bin/systemctl restart "+constants.EnbService, spec.PostStopCommand)
}

func TestComputeUeSpecDeterministic(t *testing.T) {
	cfg := config.Default()
	creds := Credentials{IMSI: "001010123456789", K: "secret", OPC: "opcval"}

	assert.Equal(t, ComputeUeSpec(cfg, creds), ComputeUeSpec(cfg, creds))
}
