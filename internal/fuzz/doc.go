// Package fuzztests houses Go fuzz harnesses that exercise the aic
// pipeline (source -> lexer -> parser -> codegen -> vm). Its goal is to
// smoke test robustness and guard against panics, hangs or allocator
// explosions on arbitrary inputs.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через лексер, парсер и, если разбор успешен, через кодген и VM.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.

package fuzztests
