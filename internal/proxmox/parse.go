package proxmox

import (
	"fmt"
	"strings"
)

// parseStorageStatus parses `pvesm status` output into typed storage
// entries. The first line is a column header.
//
//	Name             Type     Status           Total            Used       Available        %
//	local             dir     active        98497780        12988372        80459652   13.19%
func parseStorageStatus(output string) ([]Storage, error) {
	var storages []Storage
	for i, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if i == 0 && strings.HasPrefix(line, "Name") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, fmt.Errorf("malformed pvesm status line: %q", line)
		}
		storages = append(storages, Storage{
			Name:   fields[0],
			Type:   fields[1],
			Active: fields[2] == "active",
		})
	}
	return storages, nil
}

// parseBridgeLinks extracts bridge names from `ip -o link show type bridge`
// output, keeping only the vmbr* bridges Proxmox manages.
//
//	4: vmbr0: <BROADCAST,MULTICAST,UP,LOWER_UP> mtu 1500 ...
func parseBridgeLinks(output string) ([]string, error) {
	var bridges []string
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("malformed ip link line: %q", line)
		}
		name := strings.TrimSuffix(fields[1], ":")
		// VLAN-aware setups report bridge@parent.
		if at := strings.Index(name, "@"); at >= 0 {
			name = name[:at]
		}
		if strings.HasPrefix(name, "vmbr") {
			bridges = append(bridges, name)
		}
	}
	return bridges, nil
}

// parseTemplateCatalog parses `pveam available` output into template file
// names, preserving catalog order.
//
//	system          debian-12-standard_12.7-1_amd64.tar.zst
func parseTemplateCatalog(output string) ([]string, error) {
	var templates []string
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("malformed pveam available line: %q", line)
		}
		templates = append(templates, fields[1])
	}
	return templates, nil
}

// parseTemplateList extracts volume IDs from `pveam list` output, skipping
// the header line.
//
//	NAME                                                         SIZE
//	local:vztmpl/debian-12-standard_12.7-1_amd64.tar.zst         130.41MB
func parseTemplateList(output string) []string {
	var volids []string
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 || fields[0] == "NAME" {
			continue
		}
		volids = append(volids, fields[0])
	}
	return volids
}
