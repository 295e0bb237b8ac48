//go:build !mobile

// stub.go - 桌面端构建占位
//
// 不带 -tags mobile 时 mobile.go/embed.go 不参与编译，
// 这里保留 Dummy 让 ./... 能正常编译本包。
package mobile

// Dummy 空导出函数
func Dummy() {}
