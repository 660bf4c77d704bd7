package util

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// UniqueFilename 为上传文件生成不会冲突的存储文件名。
// 只保留原始文件的扩展名（统一转为小写），主体部分用
// 纳秒时间戳代替，用户提供的名字不会进入存储路径。
func UniqueFilename(originalFilename string) string {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	timestamp := strconv.FormatInt(time.Now().UnixNano(), 10)
	return "upload_" + timestamp + ext
}
