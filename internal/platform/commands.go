package platform

import (
	"fmt"
	"net/netip"
)

// ProtonVPNKeyID is repaired from the vendor's published key instead of a keyserver.
const ProtonVPNKeyID = "EDA3E22630349F1C"

// commandSet is one platform's fixed mapping from capabilities to command
// lines. An empty string or nil builder means the capability is unsupported.
type commandSet struct {
	updatePackages string
	firewallStatus string
	listProcesses  string
	readLogs       string
	quickClean     string
	blockIP        func(addr netip.Addr) string
	stopService    func(name string) string
	repairKey      func(keyID string) string

	// keyRepairUnsupported is the static reply when repairKey is nil.
	keyRepairUnsupported string
}

func linuxCommands() commandSet {
	return commandSet{
		updatePackages: "sudo apt update && sudo DEBIAN_FRONTEND=noninteractive apt -y " +
			"-o Dpkg::Options::='--force-confdef' -o Dpkg::Options::='--force-confold' upgrade",
		firewallStatus: "sudo iptables -L -n",
		listProcesses:  "ps aux --sort=-%cpu | head -n 15",
		readLogs:       "journalctl -n 50 --no-pager -o cat | uniq -c",
		quickClean: "find /tmp -mindepth 1 -maxdepth 1 -mtime +0 -exec rm -rf {} + 2>/dev/null; " +
			"rm -rf ~/.local/share/Trash/files/* ~/.local/share/Trash/info/* 2>/dev/null; " +
			"echo 'Cleanup complete.'",
		blockIP: func(addr netip.Addr) string {
			if addr.Is4() {
				return fmt.Sprintf("sudo iptables -A INPUT -s %s -j DROP", addr)
			}
			return fmt.Sprintf("sudo ip6tables -A INPUT -s %s -j DROP", addr)
		},
		stopService: func(name string) string {
			return fmt.Sprintf("sudo systemctl stop %s", name)
		},
		repairKey: func(keyID string) string {
			if keyID == ProtonVPNKeyID {
				return "wget -q -O - https://repo.protonvpn.com/debian/public_key.asc | sudo apt-key add -"
			}
			return fmt.Sprintf("sudo apt-key adv --keyserver keyserver.ubuntu.com --recv-keys %s", keyID)
		},
	}
}

func windowsCommands() commandSet {
	return commandSet{
		updatePackages: "winget upgrade --all --silent --accept-source-agreements --accept-package-agreements",
		firewallStatus: "netsh advfirewall show allprofiles",
		listProcesses:  "tasklist /FO TABLE",
		readLogs:       "wevtutil qe System /c:50 /rd:true /f:text",
		quickClean:     `del /q /f /s "%TEMP%\*" 2>nul & echo Cleanup complete.`,
		blockIP: func(addr netip.Addr) string {
			return fmt.Sprintf(`netsh advfirewall firewall add rule name="JARVIS Block %s" dir=in action=block remoteip=%s`, addr, addr)
		},
		stopService: func(name string) string {
			return fmt.Sprintf("sc stop %s", name)
		},
		keyRepairUnsupported: "GPG key management is not supported on this platform.",
	}
}
