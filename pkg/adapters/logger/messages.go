package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Batch level messages (info)
		"Processing %s -> %s (%s)":                    "%s -> %s を処理します (%s)",
		"Processing video %d/%d: %s":                  "動画を処理中 %d/%d: %s",
		"Finished %s -> %s in %s":                     "%s -> %s が完了しました (%s)",
		"Processed %d of %d videos (%d failed) in %s": "%d / %d 本の動画を処理しました (失敗 %d 本, %s)",
		"No video files found in %s":                  "%s に動画ファイルが見つかりません",
		"Summary saved to %s":                         "サマリーを %s に保存しました",
		"Interrupted, shutting down...":               "中断されました。シャットダウン中...",

		// Mask stage
		"Masking %s: %dx%d, %s fps, %d frames (%s detector)":    "%s をマスク中: %dx%d, %s fps, %d フレーム（%s 検出器）",
		"Masked %d frames, %d with regions, %d regions painted": "%d フレームをマスクしました (領域あり %d フレーム, 塗りつぶし %d 箇所)",
		"%s: %v, treating as end of stream":                     "%s: %v。ストリームの終端として扱います",

		// Remux stage
		"Remuxing %s with audio from %s": "%s に %s の音声を結合中",
		"Remuxed %s: %d bytes":           "結合完了 %s: %d バイト",

		// Trim stage
		"Clamping cut_end %s to duration %s":                                           "cut_end %s を動画の長さ %s に制限します",
		"Cutting %s from %s, keeping %s":                                               "%s を %s からカットします (残り %s)",
		"Trimmed %s: kept %s of %s":                                                    "トリム完了 %s: %s / %s を保持",
		"cut_start (%s) is accepted but not applied; the kept range starts at cut_end": "cut_start (%s) は受け付けますが適用されません。保持範囲は cut_end から始まります",

		// Verification
		"%s: output is %dx%d, source is %dx%d":        "%s: 出力は %dx%d ですが元動画は %dx%d です",
		"%s: output has %d frames, %d were masked":    "%s: 出力は %d フレームですが %d フレームをマスクしました",
		"%s: output runs at %s fps, source at %s fps": "%s: 出力は %s fps ですが元動画は %s fps です",
		"Could not verify %s: %v":                     "%s を検証できませんでした: %v",

		// Probing and tools
		"In-process probe failed for %s, using ffprobe: %v": "%s の内部解析に失敗したため ffprobe を使用します: %v",
		"In-process probe incomplete for %s, using ffprobe": "%s の内部解析結果が不完全なため ffprobe を使用します",
		"Running ffmpeg %s": "ffmpeg を実行中 %s",

		// Progress
		"%s: frame %d (elapsed %s)":                   "%s: フレーム %d (経過 %s)",
		"%s: frame %d/%d (%.1f%%) elapsed %s":         "%s: フレーム %d/%d (%.1f%%) 経過 %s",
		"%s: frame %d/%d (%.1f%%) elapsed %s, ETA %s": "%s: フレーム %d/%d (%.1f%%) 経過 %s, 残り %s",

		// Warnings
		"Failed to save debug frame %d: %v":      "デバッグフレーム %d の保存に失敗しました: %v",
		"Failed to save debug mask %d: %v":       "デバッグマスク %d の保存に失敗しました: %v",
		"Failed to remove intermediate %s: %v":   "中間ファイル %s の削除に失敗しました: %v",
		"Failed to remove partial output %s: %v": "不完全な出力 %s の削除に失敗しました: %v",

		// Errors
		"Failed to process %s: %v":    "%s の処理に失敗しました: %v",
		"Failed to write summary: %s": "サマリーの書き込みに失敗しました: %s",
		"%d of %d videos failed":      "%d / %d 本の動画が失敗しました",

		// Summary content
		"Batch Summary":         "バッチサマリー",
		"Generated":             "生成日時",
		"Run":                   "実行内容",
		"Item":                  "項目",
		"Value":                 "値",
		"Mode":                  "モード",
		"Input Folder":          "入力フォルダ",
		"Output Folder":         "出力フォルダ",
		"Video Codec":           "動画コーデック",
		"Intermediate Codec":    "中間コーデック",
		"Cut Start":             "カット開始",
		"Cut End":               "カット終了",
		"On Error":              "失敗時の動作",
		"Jobs":                  "並列数",
		"Totals":                "集計",
		"Videos":                "動画数",
		"Processed":             "処理済み",
		"Failed":                "失敗",
		"Skipped":               "スキップ",
		"Elapsed":               "経過時間",
		"Files":                 "ファイル",
		"File":                  "ファイル",
		"Status":                "状態",
		"Source":                "元の長さ",
		"Kept":                  "保持した長さ",
		"Size":                  "サイズ",
		"Resolution":            "解像度",
		"Frames":                "フレーム数",
		"Regions":               "領域数",
		"masked":                "マスク済み",
		"Errors":                "エラー",
		"Warning":               "警告",
		"OK":                    "成功",
		"No video files found.": "動画ファイルが見つかりませんでした。",
	})
}
