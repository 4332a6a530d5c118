// Package main provides localization for the vidmask CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Input and Output":  "入力と出力",
		"Tools":             "外部ツール",
		"Video and Quality": "動画と品質",
		"Batch":             "バッチ処理",
		"Trim":              "トリム",
		"Debug":             "デバッグ",
		"Logging":           "ログ",

		// Commands
		"Batch mask yellow regions in videos or trim their openings": "動画の黄色領域を一括でマスク、または冒頭を一括でトリム",
		"Paint yellow regions of every video in a folder white":      "フォルダ内の全動画の黄色領域を白で塗りつぶす",
		"Drop the first seconds of every video in a folder":          "フォルダ内の全動画の冒頭を指定秒数だけ削除",
		"Show version information":                                   "バージョン情報を表示",
		"vidmask version %s":                                         "vidmask バージョン %s",

		// Input and output flags
		"YAML configuration file":                                        "YAML設定ファイル",
		"Folder containing the source videos":                            "元動画のフォルダ",
		"Folder receiving the processed videos":                          "処理済み動画の出力先フォルダ",
		"Write a run summary to file (Markdown, or YAML for .yaml/.yml)": "実行サマリーをファイルに出力（Markdown形式、.yaml/.yml の場合は YAML 形式）",
		"Directory for intermediate files (default: output folder)":      "中間ファイルのディレクトリ（デフォルト: 出力フォルダ）",

		// Tool flags
		"Path to the ffmpeg binary":  "ffmpeg 実行ファイルのパス",
		"Path to the ffprobe binary": "ffprobe 実行ファイルのパス",

		// Video flags
		"Output video codec":                       "出力動画のコーデック",
		"Output CRF value (0-51, lower is better)": "出力のCRF値（0-51、低いほど高品質）",
		"Intermediate encoder (ffmpeg, vidio)":     "中間ファイルのエンコーダー（ffmpeg, vidio）",
		"Intermediate video codec":                 "中間ファイルの動画コーデック",
		"Skip probing the output after masking":    "マスク後の出力検証を省略",

		// Batch flags
		"What to do when a video fails (abort, continue)": "動画の処理に失敗したときの動作（abort, continue）",
		"Number of videos processed at once":              "同時に処理する動画の数",

		// Trim flags
		"Start of the cut in seconds (accepted but not applied)": "カット開始秒（受け付けますが適用されません）",
		"Seconds dropped from the start of each video":           "各動画の冒頭から削除する秒数",

		// Debug flags
		"Enable debug output":                       "デバッグ出力を有効化",
		"Directory for debug output":                "デバッグ出力のディレクトリ",
		"Also save every Nth frame with detections": "検出のあるフレームをNフレームごとにも保存",

		// Logging flags
		"Log level (debug, info, warn, error)": "ログレベル（debug, info, warn, error）",
		"Suppress all log output":              "全てのログ出力を抑制",

		// Errors
		"Input and output folders are required":                                  "入力フォルダと出力フォルダが必要です",
		"unexpected arguments %s: flags must precede INPUT_FOLDER OUTPUT_FOLDER": "不明な引数 %s: フラグは INPUT_FOLDER OUTPUT_FOLDER の前に指定してください",
	})
}
