package scheme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluation(t *testing.T) {
	s := setup(t)

	for _, tc := range []struct {
		name string
		src  string
		want string
	}{
		{"integers", "(display (list (- 10 4) (* 2 3 4) (quotient 17 5) (remainder -7 2) (modulo -7 2)))", "(6 24 3 -1 1)"},
		{"reals", "(display (list (/ 1 2) (+ 1 2.5) (exact->inexact 1) (sqrt 16)))", "(0.5 3.5 1.0 4.0)"},
		{"flonums read back", "(define p (open-output-string)) (write 0.1234567890123 p) (write (list (get-output-string p) (eqv? 0.1234567890123 (read (open-input-string (get-output-string p))))))", `("0.1234567890123" #t)`},
		{"control characters read back", `(write (list #\nul (integer->char 127) (eqv? (integer->char 27) (read (open-input-string "#\\esc")))))`, `(#\nul #\del #t)`},
		{"input-output string ports", `(define p (open-input-output-string "abcdef")) (display (list (read-char p) (begin (write-char #\X p) (read-char p)) (get-output-string p) (input-port? p) (output-port? p)))`, "(a c aXc #t #t)"},
		{"division stays exact", "(display (/ 6 3))", "2"},
		{"comparison chains", "(display (list (< 1 2 3) (< 1 3 2) (= 1 1.0) (>= 3 3 1)))", "(#t #f #t #t)"},
		{"rounding", "(display (list (round 2.5) (round 3.5) (floor -1.5) (truncate -1.5)))", "(2.0 4.0 -2.0 -1.0)"},
		{"expt", "(display (list (expt 2 10) (expt 2.0 -1)))", "(1024 0.5)"},
		{"gcd and lcm", "(display (list (gcd 12 18) (lcm 4 6) (abs -3) (max 1 5 2) (min 4 2 8)))", "(6 12 3 5 2)"},
		{"number conversion", `(display (list (number->string 255 16) (string->number "ff" 16) (string->number "1e2") (string->number "x")))`, "(ff 255 100.0 #f)"},
		{"lists", "(display (list (append '(1) '(2 3) '() '(4)) (reverse '(1 2 3)) (length '(a b)) (list* 1 2 '(3))))", "((1 2 3 4) (3 2 1) 2 (1 2 3))"},
		{"association", "(display (list (assq 'b '((a 1) (b 2))) (assoc \"b\" '((\"a\" . 1) (\"b\" . 2))) (memv 2 '(1 2 3))))", `((b 2) (b . 2) (2 3))`},
		{"equal", "(display (list (equal? '(1 #(2 \"x\")) '(1 #(2 \"x\"))) (eq? 'a 'A) (eqv? 1.0 1)))", "(#t #t #f)"},
		{"let forms", "(display (let* ((x 1) (y (+ x 1))) (letrec ((f (lambda (n) (if (= n 0) y (f (- n 1)))))) (f 3))))", "2"},
		{"named let", "(display (let loop ((i 0) (acc '())) (if (= i 3) acc (loop (+ i 1) (cons i acc)))))", "(2 1 0)"},
		{"cond arrow", "(display (cond ((assv 2 '((1 . a) (2 . b))) => cdr) (else 'none)))", "b"},
		{"case", "(display (list (case 3 ((1 2) 'low) ((3 4) 'mid) (else 'high)) (case 9 ((1) 'one) (else 'other))))", "(mid other)"},
		{"and or", "(display (list (and 1 2) (and) (or #f 3) (or)))", "(2 #t 3 #f)"},
		{"do", "(display (do ((i 0 (+ i 1)) (acc '() (cons i acc))) ((= i 3) acc)))", "(2 1 0)"},
		{"when unless", "(display (list (when #t 1 2) (unless #f 3)))", "(2 3)"},
		{"quasiquote", "(define x 5) (display `(a ,x ,@(list 1 2) b))", "(a 5 1 2 b)"},
		{"quasiquote vector", "(define x 5) (display `#(1 ,x))", "#(1 5)"},
		{"long quasiquote", "(define big (let loop ((i 0) (acc '())) (if (= i 20000) acc (loop (+ i 1) (cons i acc))))) (define qq (eval (list 'quasiquote (append big '((unquote (+ 1 2))))))) (display (list (length qq) (car qq) (list-ref qq 20000)))", "(20001 19999 3)"},
		{"dotted unquote", "(define y '(2 3)) (display `(1 . ,y))", "(1 2 3)"},
		{"nested quasiquote", "(write `(a `(b ,(c ,(+ 1 2)))))", "(a `(b ,(c 3)))"},
		{"define-macro", "(define-macro (swap! a b) `(let ((tmp ,a)) (set! ,a ,b) (set! ,b tmp))) (define p 1) (define q 2) (swap! p q) (display (list p q))", "(2 1)"},
		{"macro", "(macro (twice form) `(begin ,(cadr form) ,(cadr form))) (define n 0) (twice (set! n (+ n 1))) (display n)", "2"},
		{"promises", "(define n 0) (define p (delay (begin (set! n (+ n 1)) n))) (display (list (force p) (force p) n))", "(1 1 1)"},
		{"forced symbols keep identity", "(define p (delay 'a)) (force p) (display (list (eq? (force p) 'a) (eq? (force p) (force p))))", "(#t #t)"},
		{"forced ports stay open", `(define q (delay (open-input-string "xy"))) (force q) 1 (gc) (display (read-char (force q)))`, "x"},
		{"streams", "(define s (cons-stream 1 (cons-stream 2 '()))) (display (list (car s) (car (force (cdr s)))))", "(1 2)"},
		{"continuations", "(display (+ 1 (call/cc (lambda (k) (+ 10 (k 2))))))", "3"},
		{"apply", "(display (list (apply + 1 2 '(3 4)) (apply list '())))", "(10 ())"},
		{"eval", "(display (eval '(* 2 21)))", "42"},
		{"closures", "(define (adder n) (lambda (x) (+ x n))) (display ((adder 3) 4))", "7"},
		{"variadic", "(define (f a . rest) rest) (display (f 1 2 3))", "(2 3)"},
		{"vectors", "(define v (make-vector 3 'x)) (vector-set! v 1 'y) (display (list v (vector-length v) (vector->list v) (list->vector '(1 2))))", "(#(x y x) 3 (x y x) #(1 2))"},
		{"vector fill", "(display (vector-fill! (make-vector 2) 0))", "#(0 0)"},
		{"strings", `(display (list (string-append "a" "bc") (string-copy "xy") (string #\a #\b) (symbol->string 'Sym) (string->symbol "q")))`, "(abc xy ab Sym q)"},
		{"string comparison", `(display (list (string<? "abc" "abd") (string=? "a" "a") (string-ci=? "AbC" "aBc") (string>? "b" "ab")))`, "(#t #t #t #t)"},
		{"characters", `(write (list #\a #\space #\newline (integer->char 955) (char->integer #\A) (char-alphabetic? #\1) (char-ci=? #\a #\A)))`, `(#\a #\space #\newline #\λ 65 #f #t)`},
		{"sharp constants", `(write (list #t #f #x1F #b101 #o17 #d10))`, "(#t #f 31 5 15 10)"},
		{"write escapes", `(write "a\"b\\c\nd")`, `"a\"b\\c\nd"`},
		{"abbreviations", "(write '('a `b ,c ,@d))", "('a `b ,c ,@d)"},
		{"dotted pairs", "(write '(1 (2 . 3) . 4))", "(1 (2 . 3) . 4)"},
		{"predicates", "(display (list (pair? '()) (null? '()) (list? '(1 . 2)) (symbol? 'a) (string? \"\") (procedure? car) (boolean? #f) (integer? 2.0) (vector? #(1))))", "(#f #t #f #t #t #t #t #t #t)"},
		{"property lists", "(put 'k 'color 'red) (display (list (get 'k 'color) (get 'k 'size)))", "(red ())"},
		{"atom conversion", "(display (list (atom->string 'abc) (atom->string 5 2) (string->atom \"(\")))", "(abc 101 ()"},
		{"closure code", "(define (f x) (+ x 1)) (write (get-closure-code f))", "(lambda (x) (+ x 1))"},
		{"defined", "(define zz 1) (display (list (defined? 'zz) (defined? 'no-such-thing)))", "(#t #f)"},
		{"environments", "(display (list (environment? (current-environment)) (eq? (interaction-environment) (current-environment))))", "(#t #t)"},
		{"apropos", `(display (apropos "string-app*"))`, "(string-append)"},
		{"gensym", "(display (symbol? (gensym)))", "#t"},
		{"bytes", "(display (list (byte->integer (integer->byte 200)) (byte? (integer->byte 1))))", "(200 #t)"},
		{"printing procedures", "(display (list (lambda () 1) (delay 1)))", "(#<CLOSURE> #<PROMISE>)"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, s.run(t, tc.src))
		})
	}
}
