// Package fuzztests houses Go fuzz harnesses that exercise the sapling
// pipeline (source -> lexer -> parser -> codegen). Its goal is to smoke test
// robustness and guard against panics or hangs on arbitrary inputs.
//
// Назначение: прогонять произвольные байты через FileSet, лексер, парсер и
// генератор, проверяя инварианты токенов.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
