package channel

import (
	"errors"
	"testing"

	"github.com/arloliu/go-bts/command"
	"github.com/arloliu/go-bts/internal/fakebts"
	"github.com/arloliu/go-bts/record"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	require := require.New(t)

	addr, err := ParseAddress("21-1-1")
	require.NoError(err)
	require.Equal(Address{DevID: 21, SubDevID: 1, ChlID: 1}, addr)
	require.Equal("21-1-1", addr.String())

	for _, id := range []string{"", "21-1", "21-1-1-1", "21-a-1", "21-1-0", "21--1"} {
		_, err := ParseAddress(id)
		require.ErrorIs(err, ErrInvalidID, id)
	}
}

func TestFromDeviceInfo(t *testing.T) {
	require := require.New(t)

	m, err := FromDeviceInfo([]byte(fakebts.DeviceInfoResponse))
	require.NoError(err)
	require.Equal(16, m.Len())

	ids := m.IDs()
	require.Equal("21-1-1", ids[0])
	require.Equal("21-1-8", ids[7])
	require.Equal("21-2-1", ids[8])
	require.Equal("21-2-8", ids[15])

	p, err := m.Resolve("21-1-1")
	require.NoError(err)
	require.Equal(Address{DevID: 21, SubDevID: 1, ChlID: 1}, p.Address)
	require.Equal("127.0.0.1", p.IP)
	require.Equal(27, p.DevType)
	require.True(p.Open)

	fields := p.Fields()
	require.Equal([]string{"ip", "devtype", "devid", "subdevid", "Channelid", "channel"}, fields.Keys())
	require.Equal(int64(21), fields.Value("devid"))
	require.Equal(int64(1), fields.Value("subdevid"))
	require.Equal(int64(1), fields.Value("Channelid"))
	require.Equal("true", fields.Value("channel"))

	closed, err := m.Resolve("21-1-2")
	require.NoError(err)
	require.False(closed.Open)

	require.Equal(command.Target{IP: "127.0.0.1", DevType: 27, DevID: 21, SubDevID: 1, ChlID: 2}, closed.Target())
}

func TestFromDeviceInfo_NoDevices(t *testing.T) {
	require := require.New(t)

	_, err := FromDeviceInfo([]byte(fakebts.DeviceInfoEmptyResponse))
	require.ErrorIs(err, ErrNoDevices)
}

func TestFromDeviceInfo_MissingContainer(t *testing.T) {
	require := require.New(t)

	_, err := FromDeviceInfo([]byte(fakebts.ConnectResponse))
	require.ErrorIs(err, record.ErrDecode)
	require.ErrorIs(err, record.ErrMissingContainer)
}

func TestBuild_InvalidRecords(t *testing.T) {
	require := require.New(t)

	_, err := Build([]*record.Record{
		record.FromPairs("ip", "127.0.0.1", "devtype", int64(27), "devid", int64(21), "subdevid", int64(1)),
	})
	require.ErrorIs(err, ErrInvalidDevice)

	dup := record.FromPairs("ip", "127.0.0.1", "devtype", int64(27), "devid", int64(21),
		"subdevid", int64(1), "Channelid", int64(1), "channel", "true")
	_, err = Build([]*record.Record{dup, dup.Clone()})
	require.ErrorIs(err, ErrDuplicateID)
}

func TestResolve_NotFound(t *testing.T) {
	require := require.New(t)

	m, err := FromDeviceInfo([]byte(fakebts.DeviceInfoResponse))
	require.NoError(err)

	p, err := m.Resolve("99-9-9")
	require.Nil(p)
	require.ErrorIs(err, ErrNotFound)
	require.Contains(err.Error(), "not in channel map")

	var nf *NotFoundError
	require.True(errors.As(err, &nf))
	require.Equal("99-9-9", nf.ID)
	require.False(errors.Is(err, ErrInvalidID))
}

func TestResolve_MalformedID(t *testing.T) {
	require := require.New(t)

	m, err := FromDeviceInfo([]byte(fakebts.DeviceInfoResponse))
	require.NoError(err)

	for _, id := range []string{"21-1", "21-1-x", "21-1-1 "} {
		_, err := m.Resolve(id)
		require.ErrorIs(err, ErrNotFound, id)
		require.ErrorIs(err, ErrInvalidID, id)
	}

	_, err = m.ResolveMany("21-1-1", "21_1_2")
	require.ErrorIs(err, ErrNotFound)
	require.ErrorIs(err, ErrInvalidID)
}

func TestResolveMany(t *testing.T) {
	require := require.New(t)

	m, err := FromDeviceInfo([]byte(fakebts.DeviceInfoResponse))
	require.NoError(err)

	all, err := m.ResolveMany()
	require.NoError(err)
	require.Len(all, 16)
	for i, id := range m.IDs() {
		require.Equal(id, all[i].ID)
	}

	some, err := m.ResolveMany("21-2-3", "21-1-1")
	require.NoError(err)
	require.Len(some, 2)
	require.Equal("21-2-3", some[0].ID)
	require.Equal("21-1-1", some[1].ID)

	targets := Targets(some)
	require.Equal(3, targets[0].ChlID)
	require.Equal(2, targets[0].SubDevID)

	_, err = m.ResolveMany("21-1-1", "99-9-9")
	require.ErrorIs(err, ErrNotFound)

	_, err = m.ResolveMany("21-1-1", "21-1-1")
	require.ErrorIs(err, ErrDuplicateID)
}
