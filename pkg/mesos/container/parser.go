// Package container parses user supplied docker volume and port mapping
// specification strings into their mesos protobuf form.
package container

import (
	"strconv"
	"strings"

	"github.com/gogo/protobuf/proto"
	mesos "github.com/mesos/mesos-go/api/v0/mesosproto"
	log "github.com/sirupsen/logrus"
)

const _defaultPortProtocol = "tcp"

// ParseVolumes parses a comma separated list of volume specs, each of the
// form [hostPath:]containerPath[:mode] with mode one of "rw" or "ro"
// (default "rw"). A single-field entry is an anonymous container path.
// Malformed entries are skipped with a warning; the remainder is still
// parsed, so the result is best effort and never an error.
func ParseVolumes(spec string) []*mesos.Volume {
	var volumes []*mesos.Volume
	for _, entry := range splitSpec(spec) {
		volume := parseVolume(entry)
		if volume == nil {
			log.WithField("volume", entry).
				Warn("Unable to parse volume spec, skipping")
			continue
		}
		volumes = append(volumes, volume)
	}
	return volumes
}

func parseVolume(entry string) *mesos.Volume {
	volume := &mesos.Volume{Mode: mesos.Volume_RW.Enum()}
	fields := strings.Split(entry, ":")
	switch len(fields) {
	case 1:
		volume.ContainerPath = proto.String(fields[0])
	case 2:
		switch fields[1] {
		case "rw":
			volume.ContainerPath = proto.String(fields[0])
		case "ro":
			volume.ContainerPath = proto.String(fields[0])
			volume.Mode = mesos.Volume_RO.Enum()
		default:
			volume.HostPath = proto.String(fields[0])
			volume.ContainerPath = proto.String(fields[1])
		}
	case 3:
		volume.HostPath = proto.String(fields[0])
		volume.ContainerPath = proto.String(fields[1])
		switch fields[2] {
		case "rw":
		case "ro":
			volume.Mode = mesos.Volume_RO.Enum()
		default:
			return nil
		}
	default:
		return nil
	}
	if volume.GetContainerPath() == "" {
		return nil
	}
	return volume
}

// ParsePortMappings parses a comma separated list of port mapping specs of
// the form hostPort:containerPort[:protocol] (default protocol "tcp"). The
// same skip-with-warning policy as ParseVolumes applies.
func ParsePortMappings(spec string) []*mesos.ContainerInfo_DockerInfo_PortMapping {
	var mappings []*mesos.ContainerInfo_DockerInfo_PortMapping
	for _, entry := range splitSpec(spec) {
		mapping := parsePortMapping(entry)
		if mapping == nil {
			log.WithField("portmap", entry).
				Warn("Unable to parse port mapping spec, skipping")
			continue
		}
		mappings = append(mappings, mapping)
	}
	return mappings
}

func parsePortMapping(entry string) *mesos.ContainerInfo_DockerInfo_PortMapping {
	fields := strings.Split(entry, ":")
	protocol := _defaultPortProtocol
	switch len(fields) {
	case 3:
		protocol = fields[2]
	case 2:
	default:
		return nil
	}
	hostPort, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return nil
	}
	containerPort, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return nil
	}
	return &mesos.ContainerInfo_DockerInfo_PortMapping{
		HostPort:      proto.Uint32(uint32(hostPort)),
		ContainerPort: proto.Uint32(uint32(containerPort)),
		Protocol:      proto.String(protocol),
	}
}

func splitSpec(spec string) []string {
	var entries []string
	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			entries = append(entries, entry)
		}
	}
	return entries
}
