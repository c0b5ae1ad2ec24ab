//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package server

import (
	"log"
	"net"
)

// listenConfig はリスナーのソケットオプションを設定する
// SO_REUSEPORT はサポートしない
func listenConfig(reusePort bool) net.ListenConfig {
	if reusePort {
		log.Println("reuse_port はこのプラットフォームではサポートされていません")
	}
	return net.ListenConfig{}
}
