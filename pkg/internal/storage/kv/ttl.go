package kv

import (
	"bytes"
	"encoding/binary"
	"time"
)

// 不支持原生 TTL 的后端（memory、groupcache）把过期时间写进值头部：
//
//	"FOT1" | 过期时间 unix 毫秒（8 字节大端）| 原始值
const (
	ttlMagic  = "FOT1"
	ttlHeader = len(ttlMagic) + 8
)

// wrapTTL ttl>0 时加上过期头，否则原样返回.
func wrapTTL(value []byte, ttl time.Duration, now time.Time) []byte {
	if ttl <= 0 {
		return value
	}

	out := make([]byte, ttlHeader, ttlHeader+len(value))
	copy(out, ttlMagic)
	binary.BigEndian.PutUint64(out[len(ttlMagic):], uint64(now.Add(ttl).UnixMilli()))

	return append(out, value...)
}

// unwrapTTL 去掉过期头并判断是否已过期，没有头部的值视为永不过期.
func unwrapTTL(b []byte, now time.Time) ([]byte, bool) {
	if len(b) < ttlHeader || !bytes.HasPrefix(b, []byte(ttlMagic)) {
		return b, false
	}

	expires := int64(binary.BigEndian.Uint64(b[len(ttlMagic):ttlHeader]))
	if now.UnixMilli() >= expires {
		return nil, true
	}

	return b[ttlHeader:], false
}
